package api

import (
	stderrors "errors"
	"math"
	"net/http"
	"strconv"

	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal/errors"
	"edakit/internal/report"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleShape(c *gin.Context) {
	rows, cols := s.profiler.Descriptive.Shape(s.table)
	c.JSON(http.StatusOK, shapeResponse{Rows: rows, Columns: cols})
}

func (s *Server) handleColumns(c *gin.Context) {
	types := s.profiler.Descriptive.Dtypes(s.table)
	out := make([]columnResponse, len(types.Columns))
	for i, name := range types.Columns {
		out[i] = columnResponse{Name: name, Type: types.Types[i].String()}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleStats(c *gin.Context) {
	p, err := s.profiler.ProfileColumn(s.table, c.Param("column"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statsResponse{
		Column:         p.Column,
		Type:           p.Type.String(),
		Mean:           Number(p.Mean),
		Median:         Number(p.Median),
		StdDev:         Number(p.StdDev),
		DistinctCount:  p.DistinctCount,
		NullCount:      p.NullCount,
		NullPercentage: Number(p.NullPercentage),
		Skewness:       Number(p.Skewness),
	})
}

func (s *Server) handleNulls(c *gin.Context) {
	nulls := s.profiler.Nulls.NullColumns(s.table)
	out := make([]nullEntry, len(nulls))
	for i, nc := range nulls {
		out[i] = nullEntry{Column: nc.Column, Percentage: Number(nc.Percentage)}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleNullThreshold(c *gin.Context) {
	op, err := stats.ParseComparator(c.Query("op"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	pct, err := parseFinite(c.Query("pct"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("pct must be a finite number"))
		return
	}

	columns, err := s.profiler.Nulls.ColumnsByNullThreshold(s.table, op, pct)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if columns == nil {
		columns = []string{}
	}
	c.JSON(http.StatusOK, thresholdResponse{Operator: string(op), Threshold: pct, Columns: columns})
}

// parseFinite rejects NaN and the infinities, which strconv accepts.
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func (s *Server) handleSkew(c *gin.Context) {
	threshold := 1.0
	if raw := c.Query("threshold"); raw != "" {
		v, err := parseFinite(raw)
		if err != nil {
			s.respondError(c, errors.InvalidInput("threshold must be a finite number"))
			return
		}
		threshold = v
	}

	out := skewResponse{Threshold: threshold, Columns: []skewEntry{}}
	if skewed := s.profiler.Skew.SkewedColumns(s.table, threshold); len(skewed) > 0 {
		values, err := s.profiler.Skew.Skewness(s.table, skewed)
		if err != nil {
			s.respondError(c, err)
			return
		}
		for _, v := range values {
			out.Columns = append(out.Columns, skewEntry{Column: v.Column, Skewness: Number(v.Value)})
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleProfile(c *gin.Context) {
	profile, err := s.profiler.Summarize(c.Request.Context(), s.table, 0)
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]statsResponse, len(profile.Columns))
	for i, p := range profile.Columns {
		out[i] = statsResponse{
			Column:         p.Column,
			Type:           p.Type.String(),
			Mean:           Number(p.Mean),
			Median:         Number(p.Median),
			StdDev:         Number(p.StdDev),
			DistinctCount:  p.DistinctCount,
			NullCount:      p.NullCount,
			NullPercentage: Number(p.NullPercentage),
			Skewness:       Number(p.Skewness),
		}
	}
	c.JSON(http.StatusOK, gin.H{"table": profile.Table, "rows": profile.Rows, "columns": out})
}

// handleReport returns the markdown report, or HTML with ?format=html
func (s *Server) handleReport(c *gin.Context) {
	r, err := report.Build(c.Request.Context(), s.table, report.DefaultOptions())
	if err != nil {
		s.respondError(c, err)
		return
	}
	md := r.Markdown()
	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(md, r.Title))
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

// respondError maps domain and application errors to HTTP statuses
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	switch {
	case core.IsColumnNotFound(err):
		status = http.StatusNotFound
	case core.IsArgumentError(err), stderrors.Is(err, core.ErrUndefinedResult):
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	resp := errorResponse{Error: err.Error()}
	if errors.IsAppError(err) {
		resp.Code = errors.GetCode(err)
	}
	c.JSON(status, resp)
}
