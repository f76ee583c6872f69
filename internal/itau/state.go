package itau

// walkState is the section state carried across lines, columns, and pages
// during the main pass. It is a value threaded through calls, never shared:
// every transition returns a new state.
//
// currentCard is the last card banner seen. inFutureSection marks the
// "future installments" block, which the main pass skips entirely.
// inIntlSection marks the international block, which is diverted to the
// dedicated second pass.
type walkState struct {
	currentCard     string
	inFutureSection bool
	inIntlSection   bool
}

// transition applies one classified line to the state and reports whether
// the walker should move on without attempting transaction parsing.
func (s walkState) transition(class lineClass, line string) (walkState, bool) {
	switch class {
	case classFutureBanner:
		s.inFutureSection = true
		return s, true
	case classIntlBanner:
		s.inIntlSection = true
		return s, true
	case classCardHeader:
		// A new card always starts in the regular section, but international
		// data for a prior card can still arrive after a card switch, so the
		// international flag survives.
		if _, digits := cardHeaderParts(line); digits != "" {
			s.currentCard = digits
		}
		s.inFutureSection = false
		return s, true
	case classRegularBanner:
		// "Lançamentos : compras e saques" returns control from the diverted
		// international handling to normal parsing.
		s.inIntlSection = false
		return s, true
	case classNoise, classSubtotal, classTotal:
		return s, true
	}
	return s, false
}

// skipping reports whether transaction-shaped lines are currently ignored.
func (s walkState) skipping() bool {
	return s.inFutureSection || s.inIntlSection
}
