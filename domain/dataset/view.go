package dataset

// Labels used for results handed to presentation.
const (
	LabelAverage       = "average"
	LabelMax           = "max"
	LabelMin           = "min"
	LabelStdDevByDay   = "standard deviation by day"
	LabelNormalisedRow = "patient"
)

// Series is one labelled 1D result, one value per day.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// View is an ordered set of labelled series. Rendering is left to the caller.
type View struct {
	Title  string   `json:"title"`
	Series []Series `json:"series"`
}

// Add appends a labelled series.
func (v *View) Add(label string, values []float64) {
	v.Series = append(v.Series, Series{Label: label, Values: values})
}

// Get returns the values stored under label.
func (v View) Get(label string) ([]float64, bool) {
	for _, s := range v.Series {
		if s.Label == label {
			return s.Values, true
		}
	}
	return nil, false
}

// Map returns the view as a label -> values mapping.
func (v View) Map() map[string][]float64 {
	m := make(map[string][]float64, len(v.Series))
	for _, s := range v.Series {
		m[s.Label] = s.Values
	}
	return m
}
