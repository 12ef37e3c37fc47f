package container

import "encoding/binary"

// bitReader reads a packed bitmap MSB-first within each byte, the layout
// WOFF2's bboxBitmap and overlapSimpleBitmap streams use.
type bitReader struct {
	b   []byte
	pos int
}

func (r *bitReader) read() bool {
	if r.pos/8 >= len(r.b) {
		return false
	}
	byt := r.b[r.pos/8]
	bit := byt & (0x80 >> uint(r.pos%8))
	r.pos++
	return bit != 0
}

func signed(flag byte, pos uint, mag int32) int32 {
	if flag&(1<<pos) != 0 {
		return mag
	}
	return -mag
}

// reconstructGlyfLoca decodes a WOFF2-transformed glyf table (transform
// version 0) back into standalone glyf and loca tables, following the
// documented stream layout: a fixed 7-stream header (contours, point counts, point
// flags, point coordinate deltas, composite glyph data, explicit bboxes,
// and instructions), decoded glyph-by-glyph.
func reconstructGlyfLoca(b []byte, origLocaLength uint32) ([]byte, []byte, error) {
	if len(b) < 20 {
		return nil, nil, ErrInvalidWOFF2
	}
	optionFlags := binary.BigEndian.Uint16(b[2:4])
	numGlyphs := binary.BigEndian.Uint16(b[4:6])
	indexFormat := binary.BigEndian.Uint16(b[6:8])
	nContourStreamSize := binary.BigEndian.Uint32(b[8:12])
	nPointsStreamSize := binary.BigEndian.Uint32(b[12:16])
	flagStreamSize := binary.BigEndian.Uint32(b[16:20])
	if len(b) < 36 {
		return nil, nil, ErrInvalidWOFF2
	}
	glyphStreamSize := binary.BigEndian.Uint32(b[20:24])
	compositeStreamSize := binary.BigEndian.Uint32(b[24:28])
	bboxStreamSize := binary.BigEndian.Uint32(b[28:32])
	instructionStreamSize := binary.BigEndian.Uint32(b[32:36])

	if nContourStreamSize != 2*uint32(numGlyphs) {
		return nil, nil, ErrInvalidWOFF2
	}

	pos := 36
	take := func(n uint32) ([]byte, error) {
		if pos+int(n) > len(b) {
			return nil, ErrInvalidWOFF2
		}
		s := b[pos : pos+int(n)]
		pos += int(n)
		return s, nil
	}

	bitmapSize := ((uint32(numGlyphs) + 31) >> 5) << 2
	nContourStream, err := take(nContourStreamSize)
	if err != nil {
		return nil, nil, err
	}
	nPointsStream, err := take(nPointsStreamSize)
	if err != nil {
		return nil, nil, err
	}
	flagStream, err := take(flagStreamSize)
	if err != nil {
		return nil, nil, err
	}
	glyphStream, err := take(glyphStreamSize)
	if err != nil {
		return nil, nil, err
	}
	compositeStream, err := take(compositeStreamSize)
	if err != nil {
		return nil, nil, err
	}
	bboxBitmapBytes, err := take(bitmapSize)
	if err != nil {
		return nil, nil, err
	}
	if bboxStreamSize < bitmapSize {
		return nil, nil, ErrInvalidWOFF2
	}
	bboxStream, err := take(bboxStreamSize - bitmapSize)
	if err != nil {
		return nil, nil, err
	}
	instructionStream, err := take(instructionStreamSize)
	if err != nil {
		return nil, nil, err
	}
	var overlapBitmap []byte
	if optionFlags&0x0001 != 0 {
		overlapBitmap, err = take(bitmapSize)
		if err != nil {
			return nil, nil, err
		}
	}

	locaEntrySize := uint32(2)
	if indexFormat != 0 {
		locaEntrySize = 4
	}
	locaLength := (uint32(numGlyphs) + 1) * locaEntrySize
	if locaLength != origLocaLength {
		return nil, nil, ErrInvalidWOFF2
	}

	bboxBits := &bitReader{b: bboxBitmapBytes}
	var overlapBits *bitReader
	if overlapBitmap != nil {
		overlapBits = &bitReader{b: overlapBitmap}
	}

	var nContourPos, nPointsPos, flagPos, glyphPos, compositePos, bboxPos, instrPos int

	var glyf []byte
	loca := make([]byte, locaLength)
	writeLoca := func(i int, offset uint32) {
		if indexFormat == 0 {
			binary.BigEndian.PutUint16(loca[i*2:i*2+2], uint16(offset>>1))
		} else {
			binary.BigEndian.PutUint32(loca[i*4:i*4+4], offset)
		}
	}

	readI16 := func(s []byte, pos *int) (int16, error) {
		if *pos+2 > len(s) {
			return 0, ErrInvalidWOFF2
		}
		v := int16(binary.BigEndian.Uint16(s[*pos : *pos+2]))
		*pos += 2
		return v, nil
	}

	for g := uint16(0); g < numGlyphs; g++ {
		writeLoca(int(g), uint32(len(glyf)))

		explicitBbox := bboxBits.read()
		nContours, err := readI16(nContourStream, &nContourPos)
		if err != nil {
			return nil, nil, err
		}

		if nContours == 0 {
			if explicitBbox {
				return nil, nil, ErrInvalidWOFF2
			}
			continue
		}

		if nContours > 0 {
			var xMin, yMin, xMax, yMax int16
			if explicitBbox {
				if xMin, err = readI16(bboxStream, &bboxPos); err != nil {
					return nil, nil, err
				}
				if yMin, err = readI16(bboxStream, &bboxPos); err != nil {
					return nil, nil, err
				}
				if xMax, err = readI16(bboxStream, &bboxPos); err != nil {
					return nil, nil, err
				}
				if yMax, err = readI16(bboxStream, &bboxPos); err != nil {
					return nil, nil, err
				}
			}

			endPts := make([]uint16, nContours)
			var nPoints uint32
			for c := int16(0); c < nContours; c++ {
				np, n, err := read255UInt16(nPointsStream[nPointsPos:])
				if err != nil {
					return nil, nil, err
				}
				nPointsPos += n
				nPoints += uint32(np)
				endPts[c] = uint16(nPoints - 1)
			}

			outlineFlags := make([]byte, 0, nPoints)
			xs := make([]int16, 0, nPoints)
			ys := make([]int16, 0, nPoints)
			var x, y int32
			for p := uint32(0); p < nPoints; p++ {
				if flagPos >= len(flagStream) {
					return nil, nil, ErrInvalidWOFF2
				}
				flag := flagStream[flagPos]
				flagPos++
				onCurve := flag&0x80 == 0
				flag &= 0x7f

				var dx, dy int32
				switch {
				case flag < 10:
					if glyphPos >= len(glyphStream) {
						return nil, nil, ErrInvalidWOFF2
					}
					c0 := int32(glyphStream[glyphPos])
					glyphPos++
					dy = signed(flag, 0, int32(flag&0x0E)<<7+c0)
				case flag < 20:
					if glyphPos >= len(glyphStream) {
						return nil, nil, ErrInvalidWOFF2
					}
					c0 := int32(glyphStream[glyphPos])
					glyphPos++
					dx = signed(flag, 0, int32((flag-10)&0x0E)<<7+c0)
				case flag < 84:
					if glyphPos >= len(glyphStream) {
						return nil, nil, ErrInvalidWOFF2
					}
					c0 := int32(glyphStream[glyphPos])
					glyphPos++
					dx = signed(flag, 0, 1+int32((flag-20)&0x30)+c0>>4)
					dy = signed(flag, 1, 1+int32((flag-20)&0x0C)<<2+(c0&0x0F))
				case flag < 120:
					if glyphPos+2 > len(glyphStream) {
						return nil, nil, ErrInvalidWOFF2
					}
					c0 := int32(glyphStream[glyphPos])
					c1 := int32(glyphStream[glyphPos+1])
					glyphPos += 2
					dx = signed(flag, 0, 1+int32((flag-84)/12)<<8+c0)
					dy = signed(flag, 1, 1+(int32((flag-84)%12)>>2)<<8+c1)
				case flag < 124:
					if glyphPos+3 > len(glyphStream) {
						return nil, nil, ErrInvalidWOFF2
					}
					c0 := int32(glyphStream[glyphPos])
					c1 := int32(glyphStream[glyphPos+1])
					c2 := int32(glyphStream[glyphPos+2])
					glyphPos += 3
					dx = signed(flag, 0, c0<<4+c1>>4)
					dy = signed(flag, 1, (c1&0x0F)<<8+c2)
				default:
					if glyphPos+4 > len(glyphStream) {
						return nil, nil, ErrInvalidWOFF2
					}
					c0 := int32(glyphStream[glyphPos])
					c1 := int32(glyphStream[glyphPos+1])
					c2 := int32(glyphStream[glyphPos+2])
					c3 := int32(glyphStream[glyphPos+3])
					glyphPos += 4
					dx = signed(flag, 0, c0<<8+c1)
					dy = signed(flag, 1, c2<<8+c3)
				}

				xs = append(xs, int16(dx))
				ys = append(ys, int16(dy))
				var of byte
				if onCurve {
					of |= 0x01
				}
				if overlapBits != nil && overlapBits.read() {
					of |= 0x40
				}
				outlineFlags = append(outlineFlags, of)

				if !explicitBbox {
					x += dx
					y += dy
					if p == 0 {
						xMin, xMax = int16(x), int16(x)
						yMin, yMax = int16(y), int16(y)
					} else {
						if int16(x) < xMin {
							xMin = int16(x)
						} else if int16(x) > xMax {
							xMax = int16(x)
						}
						if int16(y) < yMin {
							yMin = int16(y)
						} else if int16(y) > yMax {
							yMax = int16(y)
						}
					}
				}
			}

			instrLen, n, err := read255UInt16(glyphStream[glyphPos:])
			if err != nil {
				return nil, nil, err
			}
			glyphPos += n
			if instrPos+int(instrLen) > len(instructionStream) {
				return nil, nil, ErrInvalidWOFF2
			}
			instructions := instructionStream[instrPos : instrPos+int(instrLen)]
			instrPos += int(instrLen)

			g := make([]byte, 0, 10+len(endPts)*2+2+len(instructions)+len(outlineFlags)+len(xs)*2+len(ys)*2)
			g = appendI16(g, nContours)
			g = appendI16(g, xMin)
			g = appendI16(g, yMin)
			g = appendI16(g, xMax)
			g = appendI16(g, yMax)
			for _, e := range endPts {
				g = appendU16(g, e)
			}
			g = appendU16(g, instrLen)
			g = append(g, instructions...)
			g = append(g, outlineFlags...)
			for _, v := range xs {
				g = appendI16(g, v)
			}
			for _, v := range ys {
				g = appendI16(g, v)
			}
			for len(g)%4 != 0 {
				g = append(g, 0)
			}
			glyf = append(glyf, g...)
		} else {
			if !explicitBbox {
				return nil, nil, ErrInvalidWOFF2
			}
			xMin, err := readI16(bboxStream, &bboxPos)
			if err != nil {
				return nil, nil, err
			}
			yMin, err := readI16(bboxStream, &bboxPos)
			if err != nil {
				return nil, nil, err
			}
			xMax, err := readI16(bboxStream, &bboxPos)
			if err != nil {
				return nil, nil, err
			}
			yMax, err := readI16(bboxStream, &bboxPos)
			if err != nil {
				return nil, nil, err
			}

			g := make([]byte, 0, 10)
			g = appendI16(g, nContours)
			g = appendI16(g, xMin)
			g = appendI16(g, yMin)
			g = appendI16(g, xMax)
			g = appendI16(g, yMax)

			hasInstructions := false
			for {
				if compositePos+2 > len(compositeStream) {
					return nil, nil, ErrInvalidWOFF2
				}
				compositeFlag := binary.BigEndian.Uint16(compositeStream[compositePos : compositePos+2])
				compositePos += 2
				argsAreWords := compositeFlag&0x0001 != 0
				haveScale := compositeFlag&0x0008 != 0
				moreComponents := compositeFlag&0x0020 != 0
				haveXYScales := compositeFlag&0x0040 != 0
				have2by2 := compositeFlag&0x0080 != 0
				haveInstr := compositeFlag&0x0100 != 0

				n := 4 // 2 bytes glyphIndex + 2 bytes byte-sized xy args
				if argsAreWords {
					n += 2
				}
				switch {
				case haveScale:
					n += 2
				case haveXYScales:
					n += 4
				case have2by2:
					n += 8
				}
				if compositePos+n > len(compositeStream) {
					return nil, nil, ErrInvalidWOFF2
				}
				g = appendU16(g, compositeFlag)
				g = append(g, compositeStream[compositePos:compositePos+n]...)
				compositePos += n
				if haveInstr {
					hasInstructions = true
				}
				if !moreComponents {
					break
				}
			}

			if hasInstructions {
				instrLen, n, err := read255UInt16(glyphStream[glyphPos:])
				if err != nil {
					return nil, nil, err
				}
				glyphPos += n
				if instrPos+int(instrLen) > len(instructionStream) {
					return nil, nil, ErrInvalidWOFF2
				}
				g = appendU16(g, instrLen)
				g = append(g, instructionStream[instrPos:instrPos+int(instrLen)]...)
				instrPos += int(instrLen)
			}
			for len(g)%4 != 0 {
				g = append(g, 0)
			}
			glyf = append(glyf, g...)
		}
	}

	writeLoca(int(numGlyphs), uint32(len(glyf)))
	return glyf, loca, nil
}

func appendI16(b []byte, v int16) []byte { return appendU16(b, uint16(v)) }
func appendU16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}
