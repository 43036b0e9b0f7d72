package visual

import "edakit/domain/stats"

// Chart inputs. Nothing in this package renders; each type carries exactly
// what a charting layer needs to draw the figure, plus the title it would use.

// Bin is one histogram bucket, [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is the binned distribution of a column's non-null values.
type Histogram struct {
	Title    string  `json:"title"`
	Column   string  `json:"column"`
	Bins     []Bin   `json:"bins"`
	Total    int     `json:"total"`
	Skewness float64 `json:"skewness"`
}

// QQPoint pairs a theoretical normal quantile with the observed value.
type QQPoint struct {
	Theoretical float64 `json:"theoretical"`
	Sample      float64 `json:"sample"`
}

// QQPlot compares a column against the normal distribution. The reference
// line passes through the first and third quartiles.
type QQPlot struct {
	Title     string    `json:"title"`
	Column    string    `json:"column"`
	Points    []QQPoint `json:"points"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	Skewness  float64   `json:"skewness"`
}

// BoxPlot summarises a column with quartiles, 1.5*IQR whiskers and the
// points beyond them.
type BoxPlot struct {
	Title        string    `json:"title"`
	Column       string    `json:"column"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

// MissingMatrix is a per-cell null mask, column-major.
type MissingMatrix struct {
	Columns     []string  `json:"columns"`
	Rows        int       `json:"rows"`
	Missing     [][]bool  `json:"missing"`
	Percentages []float64 `json:"percentages"`
}

// CorrelationMatrix holds pairwise Pearson coefficients. Visible marks the
// strict lower triangle, the half a heatmap shows.
type CorrelationMatrix struct {
	Title        string      `json:"title"`
	Columns      []string    `json:"columns"`
	Coefficients [][]float64 `json:"coefficients"`
	Visible      [][]bool    `json:"visible"`
}

// TransformPanel is one column of a skew-transform comparison.
type TransformPanel struct {
	Transform stats.TransformKind `json:"transform"`
	Lambda    float64             `json:"lambda,omitempty"`
	Values    []float64           `json:"-"`
	Histogram Histogram           `json:"histogram"`
	QQ        QQPlot              `json:"qq"`
	Skewness  float64             `json:"skewness"`
}

// TransformComparison shows a column under each applicable transform.
type TransformComparison struct {
	Column string           `json:"column"`
	Panels []TransformPanel `json:"panels"`
}

// Best returns the panel with the smallest absolute skewness.
func (c TransformComparison) Best() TransformPanel {
	best := c.Panels[0]
	for _, p := range c.Panels[1:] {
		if absLess(p.Skewness, best.Skewness) {
			best = p
		}
	}
	return best
}

// BeforeAfter pairs a column's figures from two table snapshots.
type BeforeAfter struct {
	Column          string     `json:"column"`
	BeforeQQ        *QQPlot    `json:"before_qq,omitempty"`
	AfterQQ         *QQPlot    `json:"after_qq,omitempty"`
	BeforeBox       *BoxPlot   `json:"before_box,omitempty"`
	AfterBox        *BoxPlot   `json:"after_box,omitempty"`
	BeforeHistogram *Histogram `json:"before_histogram,omitempty"`
	AfterHistogram  *Histogram `json:"after_histogram,omitempty"`
}
