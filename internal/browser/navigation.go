package browser

import (
	"context"
	"strings"
	"time"
)

const urlPollInterval = 100 * time.Millisecond

// WaitForURL опрашивает адрес вкладки: переходы Swag Labs клиентские и не
// всегда дают событие навигации.
func (s *Session) WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error {
	if timeout == 0 {
		timeout = s.cfg.Timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(urlPollInterval)
	defer ticker.Stop()

	for {
		if strings.Contains(s.page.URL(), fragment) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ErrWaitTimeout("адрес не содержит %q за %v, текущий %s", fragment, timeout, s.page.URL())
		case <-ticker.C:
		}
	}
}
