package tokenizer

import "strings"

// byteCodec is a bijection between the 256 byte values and printable runes.
// Bytes inside the three printable Latin-1 ranges ('!'..'~', '¡'..'¬' and
// '®'..'ÿ') map to themselves; the remaining 68 values are assigned runes
// 256, 257, ... in ascending byte order. Published BPE vocabularies were
// built against this exact table, so the range boundaries must not change.
type byteCodec struct {
	toRune [256]rune
	toByte map[rune]byte
}

func newByteCodec() *byteCodec {
	c := &byteCodec{toByte: make(map[rune]byte, 256)}

	next := rune(256)
	for b := 0; b < 256; b++ {
		r := rune(b)
		if !printableLatin1(b) {
			r = next
			next++
		}
		c.toRune[b] = r
		c.toByte[r] = byte(b)
	}

	return c
}

func printableLatin1(b int) bool {
	return (b >= '!' && b <= '~') || (b >= 0xA1 && b <= 0xAC) || (b >= 0xAE && b <= 0xFF)
}

// encodeBytes maps raw bytes to their printable-symbol representation.
func (c *byteCodec) encodeBytes(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(c.toRune[b])
	}
	return sb.String()
}

// decodeRunes maps printable symbols back to raw bytes.
// Runes with no codec entry are dropped.
func (c *byteCodec) decodeRunes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := c.toByte[r]
		if !ok {
			continue
		}
		out = append(out, b)
	}
	return out
}
