// Package relay drives a two-participant conversation: each model's response
// becomes the other model's next prompt for a fixed number of rounds.
//
// A round is one turn by participant one followed by one turn by participant
// two. The relay stops after the configured number of rounds, or right after
// the first turn whose invocation fails.
package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/duet/pkg/cliui"
	"github.com/papercomputeco/duet/pkg/invoker"
	"github.com/papercomputeco/duet/pkg/logger"
)

const (
	bannerWidth = 60
	turnWidth   = 40
)

// Participant identifies which side of the conversation is speaking.
type Participant int

const (
	ParticipantOne Participant = iota + 1
	ParticipantTwo
)

func (p Participant) String() string {
	return fmt.Sprintf("model %d", int(p))
}

// Config holds the relay parameters. It is passed in explicitly; the relay
// never reads flags or globals.
type Config struct {
	Model1 string
	Model2 string

	// Topic is the first prompt, sent to Model1 verbatim.
	Topic string

	// Rounds is the number of full one-then-two exchanges. Zero or less
	// performs no invocations.
	Rounds int

	// Delay is the pause after every successful turn. Zero or less disables it.
	Delay time.Duration

	// ContinueSessions gives each participant a conversation id that is
	// reused for every one of its turns.
	ContinueSessions bool
}

// Turn is one completed invocation.
type Turn struct {
	Round       int
	Participant Participant
	Model       string
	Prompt      string
	Response    string
	Elapsed     time.Duration
}

// Failure records the turn that ended the relay early.
type Failure struct {
	Round       int
	Participant Participant
	Model       string
	Err         error
}

// Result is what a run produced. It lives only in memory.
type Result struct {
	Turns   []Turn
	Failure *Failure
}

// Completed reports whether every configured round ran.
func (r *Result) Completed() bool {
	return r.Failure == nil
}

// turnContext is the state carried from one turn to the next.
type turnContext struct {
	round       int
	participant Participant
	model       string
	prompt      string
}

// SleepFunc pauses between turns.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RenderFunc transforms a response before it is printed.
type RenderFunc func(response string) string

// Relay runs a two-model conversation. Create one with New.
type Relay struct {
	invoker invoker.Invoker
	cfg     Config

	out          io.Writer
	styles       *cliui.Styles
	logger       *slog.Logger
	sleep        SleepFunc
	render       RenderFunc
	spinner      bool
	newSessionID func() string
}

// Option configures a Relay created with New.
type Option func(*Relay)

// WithOutput sets where the transcript is printed.
func WithOutput(w io.Writer) Option {
	return func(r *Relay) {
		r.out = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = l
	}
}

// WithSleep replaces the inter-turn pause.
func WithSleep(fn SleepFunc) Option {
	return func(r *Relay) {
		r.sleep = fn
	}
}

// WithRenderer sets a transform applied to every response before printing.
func WithRenderer(fn RenderFunc) Option {
	return func(r *Relay) {
		r.render = fn
	}
}

// WithSpinner shows a progress spinner while a model is working. Only
// enable it when the output is a terminal.
func WithSpinner(enabled bool) Option {
	return func(r *Relay) {
		r.spinner = enabled
	}
}

// WithSessionIDs sets the generator for per-participant conversation ids.
func WithSessionIDs(fn func() string) Option {
	return func(r *Relay) {
		r.newSessionID = fn
	}
}

// New returns a Relay that drives inv through cfg.Rounds rounds. Without
// options the transcript is discarded and pauses use Sleep.
func New(inv invoker.Invoker, cfg Config, opts ...Option) *Relay {
	r := &Relay{
		invoker:      inv,
		cfg:          cfg,
		out:          io.Discard,
		logger:       logger.Nop(),
		sleep:        Sleep,
		newSessionID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = cliui.NewStyles(r.out)
	return r
}

// Run executes the conversation. An invocation failure is not returned as
// an error: it is printed, recorded in Result.Failure, and ends the run. The
// error is non-nil only when ctx is cancelled during a pause.
func (r *Relay) Run(ctx context.Context) (*Result, error) {
	result := &Result{}
	sessions := r.sessions()

	r.printHeader()

	tc := turnContext{prompt: r.cfg.Topic}
	for tc.round = 1; tc.round <= r.cfg.Rounds; tc.round++ {
		for _, p := range []Participant{ParticipantOne, ParticipantTwo} {
			tc.participant = p
			tc.model = r.model(p)

			turn, err := r.takeTurn(ctx, tc, sessions[p])
			if err != nil {
				r.printf("%s\n", r.styles.Error.Render(fmt.Sprintf("❌ Failed to get response from %s", p)))
				r.logger.Debug("stopping conversation after failed turn",
					"round", tc.round,
					"participant", p.String(),
					"model", tc.model,
				)

				result.Failure = &Failure{
					Round:       tc.round,
					Participant: p,
					Model:       tc.model,
					Err:         err,
				}
				r.printFooter()
				return result, nil
			}

			result.Turns = append(result.Turns, turn)
			tc.prompt = turn.Response

			if err := r.sleep(ctx, r.cfg.Delay); err != nil {
				return result, fmt.Errorf("pausing after %s in round %d: %w", p, tc.round, err)
			}
		}
	}

	r.printFooter()
	r.logger.Debug("conversation completed", "turns", len(result.Turns))

	return result, nil
}

func (r *Relay) takeTurn(ctx context.Context, tc turnContext, sessionID string) (Turn, error) {
	r.printf("\n🤖 %s (Round %d):\n%s\n", r.styles.Name.Render(tc.model), tc.round, cliui.Rule("-", turnWidth))

	req := invoker.Request{
		Model:          tc.model,
		Prompt:         tc.prompt,
		ConversationID: sessionID,
	}

	var response string
	invoke := func() error {
		var err error
		response, err = r.invoker.Invoke(ctx, req)
		return err
	}

	start := time.Now()
	var err error
	if r.spinner {
		err = cliui.Step(r.out, fmt.Sprintf("%s is thinking", tc.model), invoke)
	} else {
		err = invoke()
	}
	elapsed := time.Since(start)
	if err != nil {
		return Turn{}, err
	}

	printed := response
	if r.render != nil {
		printed = r.render(response)
	}
	r.printf("%s\n", printed)

	r.logger.Debug("turn completed",
		"round", tc.round,
		"participant", tc.participant.String(),
		"model", tc.model,
		"elapsed", elapsed,
	)

	return Turn{
		Round:       tc.round,
		Participant: tc.participant,
		Model:       tc.model,
		Prompt:      tc.prompt,
		Response:    response,
		Elapsed:     elapsed,
	}, nil
}

func (r *Relay) model(p Participant) string {
	if p == ParticipantOne {
		return r.cfg.Model1
	}
	return r.cfg.Model2
}

// sessions returns the conversation id for each participant, empty unless
// ContinueSessions is set.
func (r *Relay) sessions() map[Participant]string {
	sessions := map[Participant]string{}
	if !r.cfg.ContinueSessions {
		return sessions
	}

	sessions[ParticipantOne] = r.newSessionID()
	sessions[ParticipantTwo] = r.newSessionID()
	r.logger.Debug("continuing sessions",
		"model1_session", sessions[ParticipantOne],
		"model2_session", sessions[ParticipantTwo],
	)
	return sessions
}

func (r *Relay) printHeader() {
	r.printf("🤖 Starting conversation between %s and %s\n",
		r.styles.Name.Render(r.cfg.Model1),
		r.styles.Name.Render(r.cfg.Model2),
	)
	r.printf("📝 Topic: %s\n", r.cfg.Topic)
	r.printf("🔄 Rounds: %d\n", r.cfg.Rounds)
	r.printf("%s\n", cliui.Rule("=", bannerWidth))
}

func (r *Relay) printFooter() {
	r.printf("\n%s\n", cliui.Rule("=", bannerWidth))
	r.printf("🏁 Conversation ended\n")
}

func (r *Relay) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Sleep waits for d or until ctx is done. A non-positive d returns at once.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
