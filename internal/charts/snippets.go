package charts

// ChartSnippet represents an embeddable go-echarts chart fragment.
// Div holds the root element bound to the chart target and Script the
// <script> block that initializes the chart in it. HTML is both combined
// for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}
