package itau

import "regexp"

// Regexes calibrated to the text the extractor produces at the fixed word
// tolerance. Credits carry "- " (minus, space) before the amount.
var (
	datePattern        = regexp.MustCompile(`^(\d{2}/\d{2})\s+`)
	amountPattern      = regexp.MustCompile(`((?:-\s*)?\d{1,3}(?:[. ]\d{3})*,\d{2})$`)
	installmentPattern = regexp.MustCompile(`(\d{2})/(\d{2})\s+((?:-\s*)?\d{1,3}(?:[. ]\d{3})*,\d{2})$`)

	// "CATEGORY . Location" annotation on the line after a transaction.
	categoryLocationPattern = regexp.MustCompile(`^([A-ZÇÃÕÉÊÍÓÚÀÂÔÜ][A-ZÇÃÕÉÊÍÓÚÀÂÔÜ ]*?)\s*\.\s*([A-Za-zçãõéêíóúàâôü ]+)$`)

	// Card headers look like "RAFAEL A SILVA - final 5415". The holder part
	// is all caps; a lowercase "final NNNN" closes it.
	cardHeaderPattern = regexp.MustCompile(`^([A-ZÇÃÕÉÊÍÓÚÀÂÔÜ][A-ZÇÃÕÉÊÍÓÚÀÂÔÜ\s.]*?)\s*[-–]?\s*final\s*(\d{4})`)
	cardFinalPattern  = regexp.MustCompile(`final\s*(\d{4})`)

	// Summary fields on page one.
	totalFaturaPattern     = regexp.MustCompile(`Total\s*desta\s*fatura\s+(-?\d{1,3}(?:[. ]\d{3})*,\d{2})`)
	previousBalancePattern = regexp.MustCompile(`Total\s*da\s*fatura\s*anterior\s+(-?\d{1,3}(?:[. ]\d{3})*,\d{2})`)
	paymentPattern         = regexp.MustCompile(`Pagamento\s*efetuado\s*em\s*(\d{2}/\d{2}/\d{4})\s*[-\s]+(\d{1,3}(?:[.\s]\d{3})*,\d{2})`)
	currentChargesPattern  = regexp.MustCompile(`Lançamentos\s*atuais\s+(-?\d{1,3}(?:[. ]\d{3})*,\d{2})`)
	dueDatePattern         = regexp.MustCompile(`Vencimento\s*:\s*(\d{2}/\d{2}/\d{4})`)
	statementDatePattern   = regexp.MustCompile(`Emissão\s*:\s*(\d{2}/\d{2}/\d{4})`)

	// International subsection.
	iofIntlPattern      = regexp.MustCompile(`Repasse\s*de\s*IOF\s*em\s*R\s*\$\s*(-?\d{1,3}(?:[. ]\d{3})*,\d{2})`)
	exchangeRatePattern = regexp.MustCompile(`Dólar\s*de\s*Conversão\s*R\s*\$\s*(\d+,\d{2})`)
	intlDetailsPattern  = regexp.MustCompile(`([A-Z][A-Z0-9\- ]+?)\s+(\d+,\d{2})\s+(USD|BRL|EUR)\s+(\d+,\d{2})`)
)

// Section banners and table markers, matched by substring.
const (
	markerTransactions     = "Lançamentos"
	markerTableHeader      = "compras e saques"
	markerFutureSection    = "próximas faturas"
	markerFutureSectionAlt = "Compras parceladas"
	markerIntlSection      = "Lançamentos internacionais"
	markerCardSubtotal     = "Lançamentos no cartão"
)

// noiseVocabulary lists substrings that mark boilerplate lines: table
// headers, legal text, continuation notices, phone numbers.
var noiseVocabulary = []string{
	"DATA", "ESTABELECIMENTO", "VALOR EM R$", "VALOR EM R $",
	"Continua", "Previsão", "Consulte",
	"30033030", "08007203030", "PC-",
	"Caso", "pagamento", "parcelamento",
	"crédito", "rotativo", "Demais faturas",
	"Próxima fatura", "Total para próximas",
}
