package analysis

// accountSynonyms maps a canonical account name to the names Korean
// issuers actually use for the same concept. Loaded once, read-only.
// Membership is checked in both directions: a requested name belonging to
// any group makes every other member a candidate.
var accountSynonyms = map[string][]string{
	"매출액":   {"매출액", "영업수익", "순매출액", "총매출액", "매출"},
	"매출원가":  {"매출원가", "영업비용", "판매원가"},
	"매출총이익": {"매출총이익", "매출총손익", "영업총이익"},
	"영업이익":  {"영업이익", "영업손익", "영업이익(손실)"},
	"당기순이익": {"당기순이익", "당기순손익", "순이익", "당기순이익(손실)"},
	"자산총계":  {"자산총계", "총자산", "자산합계"},
	"부채총계":  {"부채총계", "총부채", "부채합계", "부채와자본총계"},
	"자본총계":  {"자본총계", "총자본", "자본합계", "순자산"},
}

// synonymGroup returns the group containing name, or nil.
func synonymGroup(name string) []string {
	for _, group := range accountSynonyms {
		for _, member := range group {
			if member == name {
				return group
			}
		}
	}
	return nil
}
