package chunktype

// Chunk types defined by the base PNG format.
var (
	Header       = MustParse("IHDR")
	Palette      = MustParse("PLTE")
	Data         = MustParse("IDAT")
	End          = MustParse("IEND")
	Text         = MustParse("tEXt")
	CompText     = MustParse("zTXt")
	IntlText     = MustParse("iTXt")
	Gamma        = MustParse("gAMA")
	PhysDims     = MustParse("pHYs")
	ModTime      = MustParse("tIME")
	Background   = MustParse("bKGD")
	Transparency = MustParse("tRNS")
	SRGB         = MustParse("sRGB")
	ICCProfile   = MustParse("iCCP")
)

// Standard returns the base-format chunk types, critical ones first.
func Standard() []Tag {
	return []Tag{
		Header, Palette, Data, End,
		Text, CompText, IntlText,
		Gamma, PhysDims, ModTime,
		Background, Transparency, SRGB, ICCProfile,
	}
}
