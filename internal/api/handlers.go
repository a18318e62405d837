package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"absim/adapters/excel"
	"absim/domain/core"
	"absim/domain/experiment"
	"absim/internal/errors"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSimulate(c *gin.Context) {
	consumers, items, ok := s.sizes(c)
	if !ok {
		return
	}

	var labels []experiment.Variant
	if raw := strings.TrimSpace(c.Query("labels")); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			labels = append(labels, experiment.Variant(strings.TrimSpace(l)))
		}
	}

	started := time.Now()
	result, err := s.simulation.Simulate(c.Request.Context(), consumers, items, labels)
	s.metrics.ObserveRun("simulate", started, err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleEvaluate(c *gin.Context) {
	consumers, items, ok := s.sizes(c)
	if !ok {
		return
	}

	started := time.Now()
	result, err := s.simulation.Evaluate(c.Request.Context(), consumers, items)
	s.metrics.ObserveRun("evaluate", started, err)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.ObserveEvaluation(result.Evaluation)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleDescribe(c *gin.Context) {
	consumers, items, ok := s.sizes(c)
	if !ok {
		return
	}

	preview, err := s.simulation.Describe(c.Request.Context(), consumers, items)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// handleExport runs an evaluation and sends summary and p-values as an
// xlsx workbook or, with format=csv, the evaluation sheet alone
func (s *Server) handleExport(c *gin.Context) {
	consumers, items, ok := s.sizes(c)
	if !ok {
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		s.fail(c, core.NewParameterError("format", fmt.Sprintf("must be xlsx or csv, got %q", format)))
		return
	}

	result, err := s.simulation.Evaluate(c.Request.Context(), consumers, items)
	if err != nil {
		s.fail(c, err)
		return
	}

	report := excel.Report{Sheets: []excel.Sheet{
		excel.SummarySheet(result.Summary),
		excel.EvaluationSheet(result.Evaluation, result.Alpha),
	}}
	if format == "csv" {
		report.Sheets = report.Sheets[1:]
	}

	dir, err := os.MkdirTemp("", "absim-export-")
	if err != nil {
		s.fail(c, err)
		return
	}
	defer os.RemoveAll(dir)

	name := "evaluation_" + result.Manifest.RunID.String() + "." + format
	written, err := excel.Write(filepath.Join(dir, name), report)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.FileAttachment(written[0], name)
}

// sizes reads consumers and items from the query, defaulting to the
// configured run sizes
func (s *Server) sizes(c *gin.Context) (int, int, bool) {
	cfg := s.simulation.Config()

	consumers, err := intQuery(c, "consumers", cfg.NumConsumers)
	if err != nil {
		s.fail(c, err)
		return 0, 0, false
	}
	items, err := intQuery(c, "items", cfg.NumItems)
	if err != nil {
		s.fail(c, err)
		return 0, 0, false
	}
	return consumers, items, true
}

func intQuery(c *gin.Context, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewParameterError(key, fmt.Sprintf("must be an integer, got %q", raw))
	}
	return n, nil
}

func (s *Server) fail(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	status := errors.HTTPStatus(appErr)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": appErr.Error(), "code": appErr.Code})
}
