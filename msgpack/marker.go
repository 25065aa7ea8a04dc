package msgpack

// Wire marker bytes. Fix-range markers embed a small payload or length
// in the marker byte itself; the remaining markers are followed by a
// fixed-width big-endian field.
const (
	markerFixIntMax = 0x7f // 0x00..0x7f positive fixint
	markerFixMapLo  = 0x80 // 0x80..0x8f fixmap
	markerFixMapHi  = 0x8f
	markerFixArrLo  = 0x90 // 0x90..0x9f fixarray
	markerFixArrHi  = 0x9f
	markerFixStrLo  = 0xa0 // 0xa0..0xbf fixstr
	markerFixStrHi  = 0xbf
	markerNil       = 0xc0
	markerFalse     = 0xc2
	markerTrue      = 0xc3
	markerFloat32   = 0xca
	markerFloat64   = 0xcb
	markerUint8     = 0xcc
	markerUint16    = 0xcd
	markerUint32    = 0xce
	markerUint64    = 0xcf
	markerInt8      = 0xd0
	markerInt16     = 0xd1
	markerInt32     = 0xd2
	markerInt64     = 0xd3
	markerFixExt8   = 0xd7
	markerStr8      = 0xd9
	markerStr16     = 0xda
	markerStr32     = 0xdb
	markerArray16   = 0xdc
	markerArray32   = 0xdd
	markerMap16     = 0xde
	markerMap32     = 0xdf
	markerNegFixLo  = 0xe0 // 0xe0..0xff negative fixint
)

func isFixMap(m byte) bool { return m >= markerFixMapLo && m <= markerFixMapHi }
func isFixArr(m byte) bool { return m >= markerFixArrLo && m <= markerFixArrHi }
func isFixStr(m byte) bool { return m >= markerFixStrLo && m <= markerFixStrHi }
func isFixInt(m byte) bool { return m <= markerFixIntMax || m >= markerNegFixLo }
