package headless

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
)

// ConsoleNavigator 遷移と通知を出力先に書き出すNavigator
type ConsoleNavigator struct {
	base *url.URL
	out  io.Writer

	mu        sync.Mutex
	redirects []string
	alerts    []string
}

// NewConsoleNavigator 新しいConsoleNavigatorを作成
// 遷移先の相対URLはbaseURLを基準に解決する
func NewConsoleNavigator(baseURL string, out io.Writer) (*ConsoleNavigator, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	return &ConsoleNavigator{base: base, out: out}, nil
}

// Redirect 遷移先を出力
func (n *ConsoleNavigator) Redirect(_ context.Context, target string) error {
	ref, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid redirect target: %w", err)
	}
	resolved := n.base.ResolveReference(ref).String()

	n.mu.Lock()
	n.redirects = append(n.redirects, resolved)
	n.mu.Unlock()

	_, err = fmt.Fprintf(n.out, "redirect: %s\n", resolved)
	return err
}

// Alert 通知メッセージを出力
func (n *ConsoleNavigator) Alert(_ context.Context, message string) error {
	n.mu.Lock()
	n.alerts = append(n.alerts, message)
	n.mu.Unlock()

	_, err := fmt.Fprintf(n.out, "alert: %s\n", message)
	return err
}

// Redirects これまでの遷移先
func (n *ConsoleNavigator) Redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.redirects...)
}

// Alerts これまでの通知
func (n *ConsoleNavigator) Alerts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.alerts...)
}
