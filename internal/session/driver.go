// Package session drives the browser: login, navigation and capture of
// WebSocket frames from the CDP network event stream.
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/DedPeredoz/rustyloot-scraper/internal/frames"
)

// Login form selectors and wait bounds for the auth page.
const (
	selectorUser   = `input[placeholder='Email or Username']`
	selectorPass   = `input[placeholder='Password']`
	selectorSubmit = `button[type='submit']`

	loginWait  = 45 * time.Second
	submitWait = 5 * time.Second
	urlPoll    = 500 * time.Millisecond
)

// Config holds driver settings. URLs are viper-overridable upstream.
type Config struct {
	AuthURL     string
	WithdrawURL string
	Headless    bool
}

// Driver owns the browser for the duration of one run. It buffers captured
// network events as performance-log envelope strings until DrainLog is
// called. Not safe for concurrent drains; the run loop is the only consumer.
type Driver struct {
	cfg     Config
	logger  *log.Logger
	launch  *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page

	mu  sync.Mutex
	buf []string
}

// New launches a Chrome instance and opens a stealth page. The flags mirror
// what the site tolerates: no automation banner, no sandbox, fixed viewport.
func New(cfg Config, logger *log.Logger) (*Driver, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("window-size", "1920,1080")

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &Driver{cfg: cfg, logger: logger, launch: l, browser: browser, page: page}, nil
}

// Login opens the auth page, fills the credential form and waits for the URL
// to leave the auth state. Both waits are bounded; either expiring is fatal
// for the run.
func (d *Driver) Login(username, password string) error {
	d.logger.Printf("opening auth page %s", d.cfg.AuthURL)
	if err := d.page.Navigate(d.cfg.AuthURL); err != nil {
		return fmt.Errorf("navigate to auth page: %w", err)
	}

	user, err := d.page.Timeout(loginWait).Element(selectorUser)
	if err != nil {
		return fmt.Errorf("login form never appeared: %w", err)
	}
	pass, err := d.page.Timeout(loginWait).Element(selectorPass)
	if err != nil {
		return fmt.Errorf("password field never appeared: %w", err)
	}

	if err := fill(user, username); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := fill(pass, password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}

	// Prefer the submit button; fall back to Enter on the password field.
	if btn, err := d.page.Timeout(submitWait).Element(selectorSubmit); err == nil {
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("click submit: %w", err)
		}
	} else if err := pass.Type(input.Enter); err != nil {
		return fmt.Errorf("submit form: %w", err)
	}

	if err := d.waitURLLeavesAuth(); err != nil {
		return err
	}
	d.logger.Printf("login successful")
	return nil
}

// fill replaces an input's content with text.
func fill(el *rod.Element, text string) error {
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}

// waitURLLeavesAuth polls the page URL until "auth=true" disappears.
func (d *Driver) waitURLLeavesAuth() error {
	deadline := time.Now().Add(loginWait)
	for time.Now().Before(deadline) {
		info, err := d.page.Info()
		if err == nil && !strings.Contains(info.URL, "auth=true") {
			return nil
		}
		time.Sleep(urlPoll)
	}
	return fmt.Errorf("login: url never left the auth page within %s", loginWait)
}

// OpenWithdraw navigates to the withdraw page where the inventory events flow.
func (d *Driver) OpenWithdraw() error {
	d.logger.Printf("opening withdraw page %s", d.cfg.WithdrawURL)
	if err := d.page.Navigate(d.cfg.WithdrawURL); err != nil {
		return fmt.Errorf("navigate to withdraw page: %w", err)
	}
	return d.page.WaitLoad()
}

// StartCapture begins buffering WebSocket frame events. The goroutine lives
// until the browser closes.
func (d *Driver) StartCapture() {
	go d.page.EachEvent(
		func(e *proto.NetworkWebSocketFrameReceived) {
			d.record(frames.MethodFrameReceived, e.Response.PayloadData)
		},
		func(e *proto.NetworkWebSocketFrameSent) {
			d.record(frames.MethodFrameSent, e.Response.PayloadData)
		},
	)()
}

// DrainLog returns every entry accumulated since the previous call.
func (d *Driver) DrainLog() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.buf
	d.buf = nil
	return out
}

// record appends one event as a performance-log envelope string.
func (d *Driver) record(method, payload string) {
	raw, err := json.Marshal(envelope{Message: message{
		Method: method,
		Params: params{Response: response{PayloadData: payload}},
	}})
	if err != nil {
		return
	}
	d.mu.Lock()
	d.buf = append(d.buf, string(raw))
	d.mu.Unlock()
}

// Close releases the browser. Safe to call on every exit path.
func (d *Driver) Close() {
	if d.browser != nil {
		_ = d.browser.Close()
	}
	if d.launch != nil {
		d.launch.Cleanup()
	}
}

// envelope mirrors the shape Chrome's performance log wraps CDP events in,
// which is what the frame extractor consumes.
type envelope struct {
	Message message `json:"message"`
}

type message struct {
	Method string `json:"method"`
	Params params `json:"params"`
}

type params struct {
	Response response `json:"response"`
}

type response struct {
	PayloadData string `json:"payloadData"`
}
