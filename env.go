package requests

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvVars returns the process environment as Vars.  Each dotenv file
// in files is then read with godotenv, filling in names the process
// environment does not set.
func EnvVars(files ...string) (Vars, error) {
	return ReadDotEnv(files...).EnvVars()
}

// DotEnv is a snapshot of dotenv files, read once so many Env reads can
// share it.  A failed read is kept in Err and reported by every
// EnvVars call.
type DotEnv struct {
	Vars Vars
	Err  error
}

// ReadDotEnv reads files with godotenv.  No files gives an empty
// snapshot.
func ReadDotEnv(files ...string) *DotEnv {
	if len(files) == 0 {
		return &DotEnv{Vars: Vars{}}
	}
	fileVars, err := godotenv.Read(files...)
	if err != nil {
		return &DotEnv{Err: err}
	}
	vars := make(Vars, len(fileVars))
	for name, value := range fileVars {
		vars[name] = value
	}
	return &DotEnv{Vars: vars}
}

// EnvVars returns the current process environment with the snapshot's
// values filling in names it does not set.
func (dotEnv *DotEnv) EnvVars() (Vars, error) {
	if dotEnv.Err != nil {
		return nil, dotEnv.Err
	}
	vars := processEnv()
	mergeMissing(vars, dotEnv.Vars)
	return vars, nil
}

func processEnv() Vars {
	vars := make(Vars)
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		// Windows keeps per-drive entries such as "=C:=C:\" around.
		if !ok || name == "" {
			continue
		}
		if _, exists := vars[name]; !exists {
			vars[name] = value
		}
	}
	return vars
}
