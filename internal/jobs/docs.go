// Package jobs provides the background tasks of the pizza delivery server.
//
// # Available Jobs
//
// 1. LocationBroadcastJob - publishes the position of every delivering
// driver over UDP, scheduled with github.com/robfig/cron/v3 ("@every 2s")
// 2. OrderTimers - one-shot timers per order that start preparation after
// 3-5 s and mark the order ready for pickup 8-12 s later, then try to assign
// a driver
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(prepareDelay, readyDelay,
//		prepareHandler, readyHandler, assignHandler, locationsHandler, publisher, logger)
//	if err != nil {
//		log.Fatal("Failed to create jobs:", err)
//	}
//
//	createOrder := commands.NewCreateOrderCommandHandler(uowFactory, jobManager.Scheduler())
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed datagram is logged and the tick goes on with the next driver
//   - "No driver available" after an order becomes ready is logged at info
//     level; the order waits for the next READY or DELIVERED
//   - Timers are not cancelled on disconnect, only by StopAll
package jobs
