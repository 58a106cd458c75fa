package browser

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultProbeTimeout = 2 * time.Second

// Keywords: тексты кнопок, которые считаются подтверждением или закрытием.
var Keywords = []string{"ok", "close", "dismiss", "continue"}

// buttons: общий тип интерактивных элементов для эвристического поиска.
var buttons = CSS("button")

type Result struct {
	Outcome Outcome
	// Locator сработавшего кандидата. При эвристике: локатор кнопок.
	Locator Locator
	// Text кнопки, найденной эвристикой.
	Text      string
	Heuristic bool
	// Attempts: кандидаты в порядке попыток. Неподдерживаемые сюда не попадают.
	Attempts []Locator
}

func (r Result) Found() bool {
	return r.Outcome == Succeeded
}

// Prober перебирает кандидатов по порядку и кликает первый найденный и
// доступный. Ошибки отдельных кандидатов не выходят наружу.
type Prober struct {
	drv     Driver
	log     *zap.Logger
	timeout time.Duration
}

func NewProber(drv Driver, log *zap.Logger, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Prober{
		drv:     drv,
		log:     log.Named("prober"),
		timeout: timeout,
	}
}

func (p *Prober) Probe(ctx context.Context, candidates []Locator) Result {
	res := Result{Outcome: NotFound}

	for _, loc := range candidates {
		if ctx.Err() != nil {
			return res
		}

		if !loc.Supported() {
			continue
		}

		res.Attempts = append(res.Attempts, loc)
		switch p.try(ctx, loc) {
		case Succeeded:
			res.Outcome = Succeeded
			res.Locator = loc
			p.log.Info("Кандидат сработал", zap.Stringer("locator", loc), zap.Int("attempt", len(res.Attempts)))
			return res
		case NotActionable:
			res.Outcome = NotActionable
		}
	}

	if text, ok := p.scanButtons(ctx); ok {
		res.Outcome = Succeeded
		res.Locator = buttons
		res.Text = text
		res.Heuristic = true
		return res
	}

	p.log.Debug("Ни один кандидат не сработал", zap.Int("attempts", len(res.Attempts)), zap.Stringer("outcome", res.Outcome))
	return res
}

func (p *Prober) try(ctx context.Context, loc Locator) Outcome {
	el := p.drv.Element(loc)

	if err := el.WaitFor(ctx, StateClickable, p.timeout); err != nil {
		outcome := NotActionable
		if elements, findErr := p.drv.Elements(ctx, loc); findErr != nil || len(elements) == 0 {
			outcome = NotFound
		}
		p.log.Debug("Кандидат не подошёл", zap.Stringer("locator", loc), zap.Stringer("outcome", outcome), zap.Error(err))
		return outcome
	}

	if !actionable(ctx, el) {
		p.log.Debug("Кандидат скрыт или выключен", zap.Stringer("locator", loc))
		return NotActionable
	}

	if err := el.Click(ctx); err != nil {
		p.log.Debug("Клик по кандидату не удался", zap.Stringer("locator", loc), zap.Error(err))
		return NotActionable
	}

	return Succeeded
}

// scanButtons ищет среди всех кнопок страницы первую видимую и включённую с
// текстом из Keywords.
func (p *Prober) scanButtons(ctx context.Context) (string, bool) {
	el, text, ok := findKeywordButton(ctx, p.drv, true)
	if !ok {
		return "", false
	}

	if err := el.Click(ctx); err != nil {
		p.log.Debug("Клик по кнопке не удался", zap.String("text", text), zap.Error(err))
		return "", false
	}

	p.log.Info("Нажата кнопка по тексту", zap.String("text", text))
	return text, true
}

func findKeywordButton(ctx context.Context, drv Driver, requireEnabled bool) (Element, string, bool) {
	elements, err := drv.Elements(ctx, buttons)
	if err != nil {
		return nil, "", false
	}

	for _, el := range elements {
		visible, err := el.IsVisible(ctx)
		if err != nil || !visible {
			continue
		}
		if requireEnabled {
			if enabled, err := el.IsEnabled(ctx); err != nil || !enabled {
				continue
			}
		}

		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		if matchesKeyword(text) {
			return el, strings.TrimSpace(text), true
		}
	}

	return nil, "", false
}

func matchesKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func actionable(ctx context.Context, el Element) bool {
	visible, err := el.IsVisible(ctx)
	if err != nil || !visible {
		return false
	}
	enabled, err := el.IsEnabled(ctx)
	return err == nil && enabled
}
