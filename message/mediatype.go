package message

import (
	"strconv"
)

// MediaType specifies the content format of a message.
type MediaType uint16

// Content formats.
const (
	TextPlain         MediaType = 0     // text/plain;charset=utf-8
	AppCoseEncrypt0   MediaType = 16    // application/cose; cose-type="cose-encrypt0" (RFC 8152)
	AppCoseMac0       MediaType = 17    // application/cose; cose-type="cose-mac0" (RFC 8152)
	AppCoseSign1      MediaType = 18    // application/cose; cose-type="cose-sign1" (RFC 8152)
	AppLinkFormat     MediaType = 40    // application/link-format
	AppXML            MediaType = 41    // application/xml
	AppOctets         MediaType = 42    // application/octet-stream
	AppExi            MediaType = 47    // application/exi
	AppJSON           MediaType = 50    // application/json
	AppJSONPatch      MediaType = 51    // application/json-patch+json (RFC6902)
	AppJSONMergePatch MediaType = 52    // application/merge-patch+json (RFC7396)
	AppCBOR           MediaType = 60    // application/cbor (RFC 7049)
	AppCWT            MediaType = 61    // application/cwt
	AppSenmlJSON      MediaType = 110   // application/senml+json
	AppSenmlCBOR      MediaType = 112   // application/senml+cbor
	AppLwm2mTLV       MediaType = 11542 // application/vnd.oma.lwm2m+tlv
	AppLwm2mJSON      MediaType = 11543 // application/vnd.oma.lwm2m+json
	AppLwm2mCBOR      MediaType = 11544 // application/vnd.oma.lwm2m+cbor
)

var mediaTypeToString = map[MediaType]string{
	TextPlain:         "text/plain;charset=utf-8",
	AppCoseEncrypt0:   "application/cose; cose-type=\"cose-encrypt0\" (RFC 8152)",
	AppCoseMac0:       "application/cose; cose-type=\"cose-mac0\" (RFC 8152)",
	AppCoseSign1:      "application/cose; cose-type=\"cose-sign1\" (RFC 8152)",
	AppLinkFormat:     "application/link-format",
	AppXML:            "application/xml",
	AppOctets:         "application/octet-stream",
	AppExi:            "application/exi",
	AppJSON:           "application/json",
	AppJSONPatch:      "application/json-patch+json (RFC6902)",
	AppJSONMergePatch: "application/merge-patch+json (RFC7396)",
	AppCBOR:           "application/cbor (RFC 7049)",
	AppCWT:            "application/cwt",
	AppSenmlJSON:      "application/senml+json",
	AppSenmlCBOR:      "application/senml+cbor",
	AppLwm2mTLV:       "application/vnd.oma.lwm2m+tlv",
	AppLwm2mJSON:      "application/vnd.oma.lwm2m+json",
	AppLwm2mCBOR:      "application/vnd.oma.lwm2m+cbor",
}

func (c MediaType) String() string {
	str, ok := mediaTypeToString[c]
	if !ok {
		return "MediaType(" + strconv.FormatInt(int64(c), 10) + ")"
	}
	return str
}
