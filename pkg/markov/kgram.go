package markov

// window returns the w code points of text starting at start, treating text as
// circular. start may be negative or past the end; positions wrap modulo the text
// length, so a window wider than the text keeps walking backwards through it.
func window(text []rune, start, w int) string {
	n := len(text)
	if w <= 0 || n == 0 {
		return ""
	}
	buf := make([]rune, w)
	for j := range buf {
		buf[j] = text[mod(start+j, n)]
	}
	return string(buf)
}

// grams returns the order-length context preceding position i and that context
// extended by the character at i.
func grams(text []rune, i, order int) (context, extended string) {
	return window(text, i-order, order), window(text, i-order, order+1)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
