package cronjobs

import (
	"log"

	"github.com/robfig/cron/v3"

	"go-canopy/config"
	"go-canopy/pipeline"
	"go-canopy/store"
	"go-canopy/types"
)

// InitCronJobs schedules the watched-region monitor: every saved
// region gets re-analyzed on the configured cron spec so fresh
// clearing shows up without a manual request.
func InitCronJobs(cfg config.Config, st *store.Store, runner *pipeline.Runner) *cron.Cron {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	_, err := c.AddFunc(cfg.MonitorCron, func() {
		regions := st.ListRegions()
		if len(regions) == 0 {
			log.Println("CronJob: Region Monitor Running (no watched regions)")
			return
		}
		log.Printf("CronJob: Region Monitor Running (%d regions)", len(regions))
		for _, region := range regions {
			alert := st.CreateAlert(region.Bbox)
			log.Printf("CronJob: re-analyzing region %s (%s) as alert %s",
				region.Name, region.ID, alert.AlertID)
			go runner.Run(alert.AlertID, types.AnalysisRequest{Bbox: region.Bbox})
		}
	})
	if err != nil {
		log.Println("Error scheduling Region Monitor:", err)
	}

	c.Start()
	return c
}
