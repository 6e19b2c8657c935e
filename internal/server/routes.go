package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/timectl/internal/observability"
	"github.com/danmuck/timectl/internal/store"
	"github.com/danmuck/timectl/internal/timesheet"
)

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": "0.0.1",
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": "0.0.1",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/", func(c *gin.Context) {
		c.File(s.IndexFile)
	})

	s.router.GET("/projects", s.getProjects)
	s.router.POST("/submit_entry", s.submitEntry)
	s.router.GET("/recent_entries", s.getRecentEntries)
}

func (s *Server) getProjects(c *gin.Context) {
	projects, err := s.store.ListProjects()
	if err != nil {
		log.Error().Err(err).Msg("load_projects_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}
	if projects == nil {
		projects = []store.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) submitEntry(c *gin.Context) {
	sub := timesheet.Submission{
		Project:   c.PostForm("project"),
		Date:      c.PostForm("date"),
		StartTime: c.PostForm("startTime"),
		EndTime:   c.PostForm("endTime"),
		Break:     c.PostForm("break"),
		Comment:   c.PostForm("comment"),
	}

	entry, verr := timesheet.ValidateSubmission(sub)
	if verr != nil {
		log.Warn().
			Str("reason", string(verr.Reason)).
			Strs("missing", verr.Missing).
			Msg("submission_rejected")
		observability.RecordSubmissionFailure(s.Name, string(verr.Reason))
		c.String(http.StatusBadRequest, verr.Error())
		return
	}

	if err := s.store.AppendEntry(entry); err != nil {
		log.Error().Err(err).Msg("append_entry_failed")
		c.String(http.StatusInternalServerError, "Error submitting entry: "+err.Error())
		return
	}

	log.Info().
		Str("project", entry.ProjectID).
		Str("date", entry.Date).
		Str("start", entry.StartTime).
		Str("end", entry.EndTime).
		Msg("entry_submitted")
	observability.RecordSubmission(s.Name, entry.ProjectID)
	c.String(http.StatusOK, "Time entry submitted successfully!")
}

func (s *Server) getRecentEntries(c *gin.Context) {
	entries, err := s.store.ListEntries()
	if err != nil {
		log.Error().Err(err).Msg("fetch_recent_entries_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent entries"})
		return
	}

	names, err := s.store.ProjectNames()
	if err != nil {
		log.Error().Err(err).Msg("fetch_recent_entries_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent entries"})
		return
	}

	recent, err := timesheet.RecentEntries(entries, names, s.RecentLimit)
	if err != nil {
		log.Error().Err(err).Msg("fetch_recent_entries_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent entries"})
		return
	}
	if recent == nil {
		recent = []timesheet.DisplayEntry{}
	}
	c.JSON(http.StatusOK, recent)
}
