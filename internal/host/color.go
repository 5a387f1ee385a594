package host

// RGB is a colour split into channels.
type RGB struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

// Black is returned when no colour applies.
var Black = RGB{}

// ToRGB unpacks PowerPoint's 0xBBGGRR colour value.
func ToRGB(v int32) RGB {
	return RGB{
		Red:   int(v & 0xFF),
		Green: int((v >> 8) & 0xFF),
		Blue:  int((v >> 16) & 0xFF),
	}
}

// Pack is the inverse of ToRGB for in-range channels.
func (c RGB) Pack() int32 {
	return int32(c.Red&0xFF) | int32(c.Green&0xFF)<<8 | int32(c.Blue&0xFF)<<16
}
