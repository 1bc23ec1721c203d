package grading

type threshold struct {
	min    float64
	letter string
}

// thresholds are ordered highest first; the first match wins.
var thresholds = []threshold{
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// LetterGrade maps a percentage to the highest letter whose minimum it meets.
func LetterGrade(percentage float64) string {
	for _, t := range thresholds {
		if percentage >= t.min {
			return t.letter
		}
	}
	return "F"
}
