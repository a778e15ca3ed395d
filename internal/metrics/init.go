package metrics

// InitializeMetrics pre-populates the expected label combinations so
// that every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics(resolutions []string) {
	for _, status := range []string{"ready", "failed"} {
		TranscodeJobsTotal.WithLabelValues(status)
	}

	for _, res := range resolutions {
		ResolutionDuration.WithLabelValues(res)
		ResolutionFailuresTotal.WithLabelValues(res)
	}

	for _, status := range []string{"success", "error"} {
		ThumbnailGenerationsTotal.WithLabelValues(status)
	}

	for _, op := range []string{"stat", "open"} {
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
	}

	for _, op := range []string{"initialize_schema", "create_video", "video_by_id",
		"list_videos", "set_status", "set_thumbnail"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
