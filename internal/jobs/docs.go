// Package jobs provides scheduled background tasks for the pressing service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution
// schedules.
//
// # Available Jobs
//
// OutboxRelayJob drains the order event outbox into the message broker. It
// only runs when a broker is configured.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(publishHandler, "*/5 * * * * *", 100, 10, logger)
//	jobManager := jobs.NewJobManager(logger, relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty outbox is the normal case and is not logged. Delivery failures are
// recorded per message by the command handler; only failures of the batch
// itself (database errors) are logged as errors.
package jobs
