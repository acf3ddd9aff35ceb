package domain

// Statute is a legal code from the fixed catalog, identified by its
// law.go.kr law ID.
type Statute struct {
	ID   string `json:"lawId"`
	Name string `json:"lawName"`
}

// Article is one numbered provision of a statute. It only lives for the
// duration of a single generation attempt.
type Article struct {
	Number      string `json:"num"`
	Content     string `json:"content"`
	StatuteName string `json:"lawName"`
}

var statuteCatalog = []Statute{
	{ID: "001444", Name: "대한민국헌법"},
	{ID: "001706", Name: "민법"},
	{ID: "001692", Name: "형법"},
	{ID: "009318", Name: "전자상거래 등에서의 소비자보호에 관한 법률"},
	{ID: "001638", Name: "도로교통법"},
	{ID: "001248", Name: "주택임대차보호법"},
	{ID: "001206", Name: "가사소송법"},
}

// StatuteCatalog returns a copy of the statutes quizzes are drawn from.
func StatuteCatalog() []Statute {
	out := make([]Statute, len(statuteCatalog))
	copy(out, statuteCatalog)
	return out
}
