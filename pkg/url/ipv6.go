package url

import "strconv"

// parseIPv6 parses the text between the brackets of an IPv6 literal.
func parseIPv6(input string, report reportFunc) ([8]uint16, bool) {
	var address [8]uint16
	pieceIndex := 0
	compress := -1
	p := 0

	at := func(i int) int {
		if i < len(input) {
			return int(input[i])
		}
		return eof
	}

	if at(p) == ':' {
		if at(p+1) != ':' {
			report.report(ValidationIPv6InvalidCompression)
			return address, false
		}
		p += 2
		pieceIndex++
		compress = pieceIndex
	}

	for at(p) != eof {
		if pieceIndex == 8 {
			report.report(ValidationIPv6TooManyPieces)
			return address, false
		}
		if at(p) == ':' {
			if compress != -1 {
				report.report(ValidationIPv6MultipleCompression)
				return address, false
			}
			p++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value, length := 0, 0
		for length < 4 && at(p) != eof && isASCIIHexDigit(rune(at(p))) {
			value = value*16 + hexValue(byte(at(p)))
			p++
			length++
		}

		switch at(p) {
		case '.':
			if length == 0 {
				report.report(ValidationIPv4InIPv6InvalidCodePoint)
				return address, false
			}
			p -= length
			if pieceIndex > 6 {
				report.report(ValidationIPv4InIPv6TooManyPieces)
				return address, false
			}
			numbersSeen := 0
			for at(p) != eof {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if at(p) == '.' && numbersSeen < 4 {
						p++
					} else {
						report.report(ValidationIPv4InIPv6InvalidCodePoint)
						return address, false
					}
				}
				if at(p) == eof || !isASCIIDigit(rune(at(p))) {
					report.report(ValidationIPv4InIPv6InvalidCodePoint)
					return address, false
				}
				for at(p) != eof && isASCIIDigit(rune(at(p))) {
					n := at(p) - '0'
					switch ipv4Piece {
					case -1:
						ipv4Piece = n
					case 0:
						report.report(ValidationIPv4InIPv6InvalidCodePoint)
						return address, false
					default:
						ipv4Piece = ipv4Piece*10 + n
					}
					if ipv4Piece > 255 {
						report.report(ValidationIPv4InIPv6OutOfRangePart)
						return address, false
					}
					p++
				}
				address[pieceIndex] = address[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				report.report(ValidationIPv4InIPv6TooFewParts)
				return address, false
			}
			return finishIPv6(address, pieceIndex, compress, report)
		case ':':
			p++
			if at(p) == eof {
				report.report(ValidationIPv6InvalidCodePoint)
				return address, false
			}
		case eof:
		default:
			report.report(ValidationIPv6InvalidCodePoint)
			return address, false
		}
		address[pieceIndex] = uint16(value)
		pieceIndex++
	}
	return finishIPv6(address, pieceIndex, compress, report)
}

func finishIPv6(address [8]uint16, pieceIndex, compress int, report reportFunc) ([8]uint16, bool) {
	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			j := compress + swaps - 1
			address[pieceIndex], address[j] = address[j], address[pieceIndex]
			pieceIndex--
			swaps--
		}
		return address, true
	}
	if pieceIndex != 8 {
		report.report(ValidationIPv6TooFewPieces)
		return address, false
	}
	return address, true
}

// longestZeroRun returns the start of the first longest run of two or more
// zero pieces, or -1.
func longestZeroRun(address [8]uint16) int {
	best, bestLen := -1, 1
	for i := 0; i < 8; {
		if address[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && address[j] == 0 {
			j++
		}
		if j-i > bestLen {
			best, bestLen = i, j-i
		}
		i = j
	}
	return best
}

func appendIPv6(dst []byte, address [8]uint16) []byte {
	compress := longestZeroRun(address)
	ignore0 := false
	for i := 0; i < 8; i++ {
		if ignore0 && address[i] == 0 {
			continue
		}
		ignore0 = false
		if compress == i {
			if i == 0 {
				dst = append(dst, "::"...)
			} else {
				dst = append(dst, ':')
			}
			ignore0 = true
			continue
		}
		dst = strconv.AppendUint(dst, uint64(address[i]), 16)
		if i != 7 {
			dst = append(dst, ':')
		}
	}
	return dst
}

func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
