package requests

import (
	"github.com/stretchr/codecs"
	"github.com/stretchr/codecs/services"
)

var codecService services.CodecService

// Codecs returns the registry ParseBody consults for any Content-Type
// other than the two form encodings.  It starts out as the stretchr
// web codec service (JSON, XML, CSV, MessagePack, BSON).
func Codecs() services.CodecService {
	if codecService == nil {
		codecService = services.NewWebCodecService()
	}
	return codecService
}

// SetCodecs swaps the registry wholesale.  Passing nil restores the
// default on the next call to Codecs.
func SetCodecs(newService services.CodecService) {
	codecService = newService
}

// AddCodec teaches ParseBody an extra body format.
func AddCodec(codec codecs.Codec) {
	Codecs().AddCodec(codec)
}

// unmarshalBody decodes body with the codec registered for
// contentType.  An unregistered type fails with
// *services.ContentTypeNotSupportedError.
func unmarshalBody(contentType string, body []byte) (interface{}, error) {
	codec, err := Codecs().GetCodec(contentType)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := codec.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
