package position

// PathSpan returns the byte span [start, end) of the value at path, walking
// the same tolerant scan Analyze uses. Validation errors carry instance
// paths; this turns them back into source ranges.
func PathSpan(text string, path Path) (start, end int, ok bool) {
	s := &scanner{src: text}
	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != '{' {
		return 0, 0, false
	}
	start, ok = s.locateIn(path, 1)
	if !ok {
		return 0, 0, false
	}
	s.pos = start
	s.skipValue(1)
	if s.pos <= start {
		return 0, 0, false
	}
	return start, s.pos, true
}

// ObjectKeys returns the member names of the object at path, in document
// order. Returns nil when path does not resolve to an object.
func ObjectKeys(text string, path Path) []string {
	s := &scanner{src: text}
	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != '{' {
		return nil
	}
	start, ok := s.locateIn(path, 1)
	if !ok || start >= len(s.src) || s.src[start] != '{' {
		return nil
	}
	s.pos = start + 1

	var keys []string
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return keys
		}
		switch c := s.src[s.pos]; {
		case c == '}':
			return keys
		case c == ',':
			s.pos++
		case c == '"':
			key, _ := s.scanString()
			keys = append(keys, key)
			s.skipColonValue()
		default:
			s.pos++
		}
	}
}

// locateIn advances the scanner, positioned at the start of a value, to the
// start of the value addressed by path within it.
func (s *scanner) locateIn(path Path, depth int) (int, bool) {
	if depth > MaxDepth || s.pos >= len(s.src) {
		return 0, false
	}
	if len(path) == 0 {
		return s.pos, true
	}

	seg := path[0]
	if seg.IsKey() {
		if s.src[s.pos] != '{' {
			return 0, false
		}
		s.pos++
		for {
			s.skipSpace()
			if s.pos >= len(s.src) {
				return 0, false
			}
			switch c := s.src[s.pos]; {
			case c == '}':
				return 0, false
			case c == ',':
				s.pos++
			case c == '"':
				key, _ := s.scanString()
				s.skipSpace()
				if s.pos < len(s.src) && s.src[s.pos] == ':' {
					s.pos++
				}
				s.skipSpace()
				if key == seg.Name {
					return s.locateIn(path[1:], depth+1)
				}
				s.skipMemberValue(depth + 1)
			default:
				s.pos++
			}
		}
	}

	if s.src[s.pos] != '[' {
		return 0, false
	}
	s.pos++
	index := 0
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return 0, false
		}
		switch c := s.src[s.pos]; {
		case c == ']':
			return 0, false
		case c == ',':
			s.pos++
			index++
		default:
			if index == seg.Index {
				return s.locateIn(path[1:], depth+1)
			}
			before := s.pos
			s.skipValue(depth + 1)
			if s.pos == before {
				s.pos++
			}
		}
	}
}

// skipColonValue consumes an optional ':' and the member value after an
// already-consumed key.
func (s *scanner) skipColonValue() {
	s.skipSpace()
	if s.pos < len(s.src) && s.src[s.pos] == ':' {
		s.pos++
	}
	s.skipSpace()
	s.skipMemberValue(1)
}

// skipMemberValue consumes a member value unless the member is already
// terminated by ',' or '}'.
func (s *scanner) skipMemberValue(depth int) {
	if s.pos >= len(s.src) {
		return
	}
	if c := s.src[s.pos]; c == ',' || c == '}' {
		return
	}
	before := s.pos
	s.skipValue(depth)
	if s.pos == before {
		s.pos++
	}
}

// skipValue consumes an entire value of any kind.
func (s *scanner) skipValue(depth int) {
	if depth > MaxDepth {
		s.abort()
		return
	}
	if s.pos >= len(s.src) {
		return
	}

	switch s.src[s.pos] {
	case '{':
		s.pos++
		for s.pos < len(s.src) {
			s.skipSpace()
			if s.pos >= len(s.src) {
				return
			}
			switch c := s.src[s.pos]; {
			case c == '}':
				s.pos++
				return
			case c == ',':
				s.pos++
			case c == '"':
				s.scanString()
				s.skipSpace()
				if s.pos < len(s.src) && s.src[s.pos] == ':' {
					s.pos++
				}
				s.skipSpace()
				s.skipMemberValue(depth + 1)
			default:
				s.pos++
			}
		}
	case '[':
		s.pos++
		for s.pos < len(s.src) {
			s.skipSpace()
			if s.pos >= len(s.src) {
				return
			}
			switch c := s.src[s.pos]; {
			case c == ']':
				s.pos++
				return
			case c == ',':
				s.pos++
			default:
				before := s.pos
				s.skipValue(depth + 1)
				if s.pos == before {
					s.pos++
				}
			}
		}
	case '"':
		s.scanString()
	default:
		s.skipLiteral()
	}
}
