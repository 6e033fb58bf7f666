package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs at debug level how long a pipeline stage took. Call it as
// `defer TrackTime("Stage", time.Now())` at the top of the stage.
func TrackTime(stage string, start time.Time) {
	log.WithField("stage", stage).Debugf("%s took %d ms", stage, time.Since(start).Milliseconds())
}
