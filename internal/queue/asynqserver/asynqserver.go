package asynqserver

import (
	"github.com/hibiken/asynq"
	"github.com/traderacademy/backoffice/internal/cache"
	"github.com/traderacademy/backoffice/internal/config"
	"github.com/traderacademy/backoffice/internal/queue/processor"
	"github.com/traderacademy/backoffice/internal/queue/task"
	"github.com/traderacademy/backoffice/internal/worker"
)

func New(cfg config.Cache, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendLoginCodeTaskName, processor.NewSendLoginCodeProcessor(workers))
	mux.Handle(task.SendNotificationTaskName, processor.NewSendNotificationProcessor(workers))
	queues := map[string]int{
		task.SendLoginCodeQueueName:    2,
		task.SendNotificationQueueName: 1,
	}
	return mux, queues
}
