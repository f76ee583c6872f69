package itau

import "testing"

func TestTransition_CardHeaderClearsFutureOnly(t *testing.T) {
	s := walkState{currentCard: "1234", inFutureSection: true, inIntlSection: true}

	line := "RAFAEL A SILVA - final 5415"
	got, handled := s.transition(classifyLine(line), line)
	if !handled {
		t.Fatal("card header must be handled")
	}
	if got.currentCard != "5415" {
		t.Errorf("currentCard = %q, want 5415", got.currentCard)
	}
	if got.inFutureSection {
		t.Error("a new card always starts in the regular section")
	}
	if !got.inIntlSection {
		t.Error("card header must not clear the international flag")
	}
}

func TestTransition_RegularBannerClearsInternational(t *testing.T) {
	s := walkState{inIntlSection: true}
	line := "Lançamentos : compras e saques"
	got, _ := s.transition(classifyLine(line), line)
	if got.inIntlSection {
		t.Error("regular-transactions banner must clear the international flag")
	}
}

func TestTransition_BannersSetFlags(t *testing.T) {
	s := walkState{}

	got, _ := s.transition(classFutureBanner, "Compras parceladas - próximas faturas")
	if !got.inFutureSection {
		t.Error("future banner must set the future flag")
	}

	got, _ = s.transition(classIntlBanner, "Lançamentos internacionais")
	if !got.inIntlSection {
		t.Error("international banner must set the international flag")
	}
}

func TestTransition_CandidateNotHandled(t *testing.T) {
	s := walkState{}
	_, handled := s.transition(classCandidate, "16/10 LOJA 10,00")
	if handled {
		t.Error("candidates are the walker's job, not the state machine's")
	}
}

func TestSkipping(t *testing.T) {
	if (walkState{}).skipping() {
		t.Error("fresh state must not skip")
	}
	if !(walkState{inFutureSection: true}).skipping() {
		t.Error("future section must skip")
	}
	if !(walkState{inIntlSection: true}).skipping() {
		t.Error("international section must skip")
	}
}

func TestTransition_ValueSemantics(t *testing.T) {
	s := walkState{}
	s.transition(classFutureBanner, "próximas faturas")
	if s.inFutureSection {
		t.Error("transition must not mutate the receiver")
	}
}
