package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"sutext.github.io/tether"
	"sutext.github.io/tether/socket"
	"sutext.github.io/tether/supervisor"
	"sutext.github.io/tether/xlog"
)

func main() {
	root := &cobra.Command{
		Use:           "tetherctl",
		Short:         "supervised websocket connection demo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCommand())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand() *cobra.Command {
	var cfgPath string
	var url string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "keep a websocket connection alive and echo over it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cfgPath)
			if err != nil {
				return err
			}
			if url != "" {
				cfg.URL = url
			}
			if cfg.URL == "" {
				return fmt.Errorf("no url configured")
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to yaml config")
	cmd.Flags().StringVarP(&url, "url", "u", "", "websocket url (overrides config)")
	return cmd
}

func run(cfg *config) error {
	if cfg.LogFormat == "json" {
		xlog.SetDefault(xlog.NewJSON(cfg.level()))
	} else {
		xlog.SetDefault(xlog.NewText(cfg.level()))
	}

	link := tether.Dial(cfg.URL,
		supervisor.WithHeartbeat(cfg.heartbeat()),
		supervisor.WithConnectTimeout(cfg.timeout()),
		supervisor.WithReconnectDelay(cfg.reconnect()),
		supervisor.WithHeartbeatSender(func(s socket.Socket, _ time.Duration) {
			if err := s.Send(heartbeatFrame()); err != nil {
				xlog.Debug("heartbeat send failed", xlog.Err(err))
			}
		}),
	)
	link.Supervisor.Hub().Subscribe(supervisor.EventStateChange, func(p any) {
		xlog.Info("connection state", xlog.State(p.(supervisor.ConnState)))
	})
	link.Supervisor.Hub().Subscribe(supervisor.EventConnectTimeout, func(any) {
		xlog.Warn("handshake timed out")
	})
	link.Supervisor.Hub().Subscribe(tether.EventUnsolicited, func(p any) {
		xlog.Info("unsolicited message", xlog.String("data", string(p.([]byte))))
	})

	if err := link.Supervisor.Activate(); err != nil {
		return err
	}
	defer link.Supervisor.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.echoEvery())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			xlog.Info("shutting down")
			return nil
		case <-ticker.C:
			issueEcho(ctx, link)
		}
	}
}

func issueEcho(ctx context.Context, link *tether.Link) {
	if link.Supervisor.State() != supervisor.StateConnected {
		return
	}
	cmd := newEchoCommand(time.Now().Format(time.RFC3339Nano))
	fut, err := link.Correlator.Issue(cmd)
	if err != nil {
		xlog.Warn("echo issue failed", xlog.Err(err))
		return
	}
	go func() {
		waitCtx, cancel := context.WithTimeout(ctx, time.Second*10)
		defer cancel()
		v, err := fut.Await(waitCtx)
		if err != nil {
			xlog.Warn("echo unanswered", xlog.Exchange(cmd.id), xlog.Err(err))
			return
		}
		xlog.Info("echo answered", xlog.Exchange(cmd.id), xlog.Any("payload", v))
	}()
}
