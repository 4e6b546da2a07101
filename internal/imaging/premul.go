package imaging

// Premultiply converts a straight-alpha quad to premultiplied alpha.
// Formula: channel = channel * alpha / 255, rounded.
func Premultiply(r, g, b, a uint8) (pr, pg, pb, pa uint8) {
	if a == 255 {
		return r, g, b, a
	}
	if a == 0 {
		return 0, 0, 0, 0
	}
	ua := uint16(a)
	pr = uint8((uint16(r)*ua + 127) / 255)
	pg = uint8((uint16(g)*ua + 127) / 255)
	pb = uint8((uint16(b)*ua + 127) / 255)
	return pr, pg, pb, a
}

// Unpremultiply converts a premultiplied quad back to straight alpha.
// Channels are clamped to alpha first so malformed inputs cannot overflow.
func Unpremultiply(r, g, b, a uint8) (sr, sg, sb, sa uint8) {
	if a == 255 || a == 0 {
		return r, g, b, a
	}
	ua := uint16(a)
	sr = uint8(min(uint16(r)*255/ua, 255))
	sg = uint8(min(uint16(g)*255/ua, 255))
	sb = uint8(min(uint16(b)*255/ua, 255))
	return sr, sg, sb, a
}
