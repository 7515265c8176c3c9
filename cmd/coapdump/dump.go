package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/plgd-dev/coapmsg/dedup"
	"github.com/plgd-dev/coapmsg/message"
	"github.com/plgd-dev/coapmsg/message/codes"
	"github.com/plgd-dev/coapmsg/message/noresponse"
	"github.com/plgd-dev/coapmsg/message/pool"
	"github.com/plgd-dev/coapmsg/udp/coder"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	maxDatagramSize     = 64 * 1024
	maxPooledBufferSize = 2048
)

type input struct {
	name string
	data []byte
}

type optionResult struct {
	Number uint32 `json:"number"`
	Name   string `json:"name"`
	Value  string `json:"value"`
}

type result struct {
	Input         string         `json:"input"`
	Valid         bool           `json:"valid"`
	Reason        string         `json:"reason,omitempty"`
	Offset        int            `json:"offset,omitempty"`
	Error         string         `json:"error,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	Type          string         `json:"type,omitempty"`
	Code          *codes.Code    `json:"code,omitempty"`
	MessageID     uint16         `json:"messageId"`
	Token         string         `json:"token,omitempty"`
	Options       []optionResult `json:"options,omitempty"`
	PayloadLength int            `json:"payloadLength"`
	NoResponse    []string       `json:"noResponse,omitempty"`
	Duplicate     bool           `json:"duplicate,omitempty"`

	dump string
}

// readInputs loads datagrams from files, stdin ("-") or hex arguments.
// Spaces and colons inside hex arguments are ignored.
func readInputs(args []string, isHex bool, stdin io.Reader) ([]input, error) {
	inputs := make([]input, 0, len(args))
	stdinRead := false
	for _, arg := range args {
		var data []byte
		var err error
		switch {
		case isHex:
			data, err = hex.DecodeString(strings.NewReplacer(" ", "", ":", "").Replace(arg))
		case arg == "-":
			if stdinRead {
				return nil, errors.New("cannot read -: stdin given more than once")
			}
			stdinRead = true
			data, err = io.ReadAll(io.LimitReader(stdin, maxDatagramSize+1))
		default:
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read %v: %w", arg, err)
		}
		if len(data) > maxDatagramSize {
			return nil, fmt.Errorf("cannot read %v: datagram larger than %v bytes", arg, maxDatagramSize)
		}
		inputs = append(inputs, input{name: arg, data: data})
	}
	return inputs, nil
}

// decodeAll decodes inputs concurrently. Results keep the input order; the
// returned error aggregates all malformed datagrams.
func decodeAll(ctx context.Context, inputs []input, opts rootOpts) ([]result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]result, len(inputs))
	p := pool.New(uint32(opts.parallel), maxPooledBufferSize)
	var mutex sync.Mutex
	var errs *multierror.Error

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallel)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := decodeOne(ctx, p, inputs[i], opts.verbose)
			results[i] = r
			if err != nil {
				logrus.WithField("input", inputs[i].name).Debugf("malformed datagram: %v", err)
				mutex.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%v: %w", inputs[i].name, err))
				mutex.Unlock()
				return nil
			}
			logrus.WithField("input", inputs[i].name).Debugf("decoded %v", r.Summary)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if opts.dedup {
		markDuplicates(inputs, results)
	}
	return results, errs.ErrorOrNil()
}

// markDuplicates runs in input order so that the first copy of a message is
// the one reported as original.
func markDuplicates(inputs []input, results []result) {
	f := dedup.New(dedup.WithErrors(func(err error) {
		logrus.Warnf("dedup: %v", err)
	}))
	defer f.Close()
	for i := range inputs {
		if !results[i].Valid {
			continue
		}
		dup, err := f.CheckDatagram(inputs[i].data)
		if err != nil {
			continue
		}
		results[i].Duplicate = dup
	}
	st := f.Stats()
	logrus.Debugf("dedup: checked %v, duplicates %v", st.Checked, st.Duplicates)
}

func decodeOne(ctx context.Context, p *pool.Pool, in input, verbose bool) (result, error) {
	r := result{Input: in.name}
	m := p.AcquireMessage(ctx)
	defer p.ReleaseMessage(m)

	if _, err := m.UnmarshalWithDecoder(coder.DefaultCoder, in.data); err != nil {
		r.Error = err.Error()
		var malformed *message.MalformedError
		if errors.As(err, &malformed) {
			r.Reason = malformed.Reason.String()
			r.Offset = malformed.Offset
		}
		return r, err
	}
	v, err := m.View()
	if err != nil {
		r.Error = err.Error()
		return r, err
	}
	code := v.Code()
	r.Valid = true
	r.Summary = v.Summary()
	r.Type = v.Type().String()
	r.Code = &code
	r.MessageID = v.MessageID()
	r.Token = hex.EncodeToString(v.Token())
	r.PayloadLength = v.PayloadLength()
	v.ForEachOption(func(o message.Option) bool {
		r.Options = append(r.Options, optionResult{
			Number: uint32(o.ID),
			Name:   o.ID.String(),
			Value:  hex.EncodeToString(o.Value),
		})
		return true
	})
	if value, ok := noresponse.FromView(v); ok && v.IsRequest() {
		r.NoResponse = noresponse.Classes(value)
	}
	if verbose {
		var buf bytes.Buffer
		if err := v.DebugPrint(&buf); err != nil {
			return r, err
		}
		r.dump = buf.String()
	}
	return r, nil
}

func writeResults(w io.Writer, results []result, opts rootOpts) error {
	if opts.json {
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range results {
		var line string
		switch {
		case !r.Valid:
			line = fmt.Sprintf("%v: invalid: %v", r.Input, r.Error)
		case r.Duplicate:
			line = fmt.Sprintf("%v: %v (duplicate)", r.Input, r.Summary)
		default:
			line = fmt.Sprintf("%v: %v", r.Input, r.Summary)
		}
		if len(r.NoResponse) > 0 {
			line += ", no response for " + strings.Join(r.NoResponse, " ")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if r.dump != "" {
			if _, err := io.WriteString(w, r.dump); err != nil {
				return err
			}
		}
	}
	return nil
}
