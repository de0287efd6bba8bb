package queuestats

import (
	"context"
	"time"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/transport"
)

const (
	statsPath  = "/queue/stats"
	failedPath = "/queue/failed"
)

type Queue struct {
	Name    string `json:"name"`
	Pending int    `json:"pending"`
	Delayed int    `json:"delayed"`
}

// Stats summarises the backend job queues.
type Stats struct {
	Pending    int     `json:"pending"`
	Processing int     `json:"processing"`
	Failed     int     `json:"failed"`
	Processed  int     `json:"processed"`
	Queues     []Queue `json:"queues"`
}

// Healthy reports whether no job has failed.
func (s Stats) Healthy() bool {
	return s.Failed == 0
}

type FailedJob struct {
	ID         int       `json:"id"`
	UUID       string    `json:"uuid"`
	Connection string    `json:"connection"`
	Queue      string    `json:"queue"`
	Job        string    `json:"job"`
	Exception  string    `json:"exception"`
	FailedAt   time.Time `json:"failed_at"`
}

type Service struct {
	r api.Requester
}

func New(r api.Requester) *Service {
	return &Service{r: r}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return api.Fetch[Stats](s.r.Get(ctx, statsPath))
}

func (s *Service) FailedJobs(ctx context.Context, params api.ListParams) (*api.Page[FailedJob], error) {
	return api.FetchPage[FailedJob](s.r.Get(ctx, failedPath, transport.WithQuery(params.Query())))
}

// RetryJob pushes a failed job back onto its queue.
func (s *Service) RetryJob(ctx context.Context, uuid string) error {
	return api.Check(s.r.Post(ctx, failedPath+"/"+uuid+"/retry", nil))
}

// FlushFailed deletes every failed job.
func (s *Service) FlushFailed(ctx context.Context) error {
	return api.Check(s.r.Delete(ctx, failedPath))
}
