package parser

import (
	"encoding/binary"
	"math"
)

// Field readers for fixed-offset big-endian records. The At variants
// read zero past the end of the record; the AtOr variants substitute a
// caller default; the AtOk variants report presence. Records grow new
// trailing fields across protocol versions, so short reads are routine
// rather than errors.

func u8At(rec []byte, off int) uint8 {
	if off >= len(rec) {
		return 0
	}
	return rec[off]
}

func u8AtOr(rec []byte, off int, def uint8) uint8 {
	if off >= len(rec) {
		return def
	}
	return rec[off]
}

func u8AtOk(rec []byte, off int) (uint8, bool) {
	if off >= len(rec) {
		return 0, false
	}
	return rec[off], true
}

func u16At(rec []byte, off int) uint16 {
	if off+2 > len(rec) {
		return 0
	}
	return binary.BigEndian.Uint16(rec[off:])
}

func u16AtOk(rec []byte, off int) (uint16, bool) {
	if off+2 > len(rec) {
		return 0, false
	}
	return binary.BigEndian.Uint16(rec[off:]), true
}

func i32At(rec []byte, off int) int32 {
	if off+4 > len(rec) {
		return 0
	}
	return int32(binary.BigEndian.Uint32(rec[off:]))
}

func i32AtOr(rec []byte, off int, def int32) int32 {
	if off+4 > len(rec) {
		return def
	}
	return int32(binary.BigEndian.Uint32(rec[off:]))
}

func f32At(rec []byte, off int) float64 {
	if off+4 > len(rec) {
		return 0
	}
	return float64(math.Float32frombits(binary.BigEndian.Uint32(rec[off:])))
}

func f32AtOr(rec []byte, off int, def float64) float64 {
	if off+4 > len(rec) {
		return def
	}
	return float64(math.Float32frombits(binary.BigEndian.Uint32(rec[off:])))
}
