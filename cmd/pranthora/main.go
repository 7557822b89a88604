// Command pranthora is a small operator console for the Pranthora platform.
//
// Usage:
//
//	pranthora agents list
//	pranthora agents get <agent-id>
//	pranthora agents create --name "Support Bot" --prompt "You help customers."
//	pranthora agents delete <agent-id>
//	pranthora call <phone-number> --agent <agent-id>
//	pranthora talk <agent-id>
//
// Configuration comes from PRANTHORA_API_KEY and PRANTHORA_BASE_URL, with a
// .env file in the working directory honored when present.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	pranthora "github.com/firstpeak-ai/pranthora-go"
	"github.com/firstpeak-ai/pranthora-go/miniaudio"
)

var (
	flagBaseURL string
	flagJSON    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pranthora",
		Short:         "Manage Pranthora voice agents and talk to them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides PRANTHORA_BASE_URL)")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "print raw JSON output")

	root.AddCommand(agentsCmd(), callCmd(), talkCmd())
	return root
}

// newClient builds an SDK client from the environment.
func newClient() (*pranthora.Client, error) {
	_ = godotenv.Load()

	key := os.Getenv("PRANTHORA_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("PRANTHORA_API_KEY is not set")
	}
	base := flagBaseURL
	if base == "" {
		base = os.Getenv("PRANTHORA_BASE_URL")
	}
	return pranthora.New(pranthora.Config{
		BaseURL:          base,
		APIKey:           key,
		StructuredLogger: pranthora.NewLoggerFromEnv(),
	})
}

func agentsCmd() *cobra.Command {
	agents := &cobra.Command{
		Use:   "agents",
		Short: "Manage voice agents",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			out, err := c.Agents.List(cmd.Context())
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(out)
			}
			for _, a := range out {
				model := ""
				if a.Configurations != nil && a.Configurations.Model != nil {
					model = a.Configurations.Model.ModelName
				}
				fmt.Printf("%-38s %-24s %s\n", a.ID, a.Agent.Name, model)
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <agent-id>",
		Short: "Show one agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			a, err := c.Agents.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(a)
		},
	}

	var createParams pranthora.CreateAgentParams
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			a, err := c.Agents.Create(cmd.Context(), createParams)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(a)
			}
			fmt.Println(a.ID)
			return nil
		},
	}
	create.Flags().StringVar(&createParams.Name, "name", "", "agent name (required)")
	create.Flags().StringVar(&createParams.SystemPrompt, "prompt", "", "system prompt")
	create.Flags().StringVar(&createParams.Model, "model", "", "LLM model name")
	create.Flags().StringVar(&createParams.Voice, "voice", "", "TTS voice name")
	create.Flags().StringVar(&createParams.Transcriber, "transcriber", "", "STT configuration name")
	_ = create.MarkFlagRequired("name")

	var force bool
	del := &cobra.Command{
		Use:   "delete <agent-id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			res, err := c.Agents.Delete(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			fmt.Println(res.Message)
			return nil
		},
	}
	del.Flags().BoolVar(&force, "force", false, "delete even when the agent has live resources")

	agents.AddCommand(list, get, create, del)
	return agents
}

func callCmd() *cobra.Command {
	var agentID string
	call := &cobra.Command{
		Use:   "call <phone-number>",
		Short: "Start an outbound phone call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			res, err := c.Calls.Create(cmd.Context(), args[0], agentID)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(res)
			}
			fmt.Printf("%s: %s (sid %s)\n", res.Status, res.Message, res.CallSID)
			return nil
		},
	}
	call.Flags().StringVar(&agentID, "agent", "", "agent to place the call (required)")
	_ = call.MarkFlagRequired("agent")
	return call
}

func talkCmd() *cobra.Command {
	talk := &cobra.Command{
		Use:   "talk <agent-id>",
		Short: "Hold a live voice conversation with an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			return runTalk(cmd.Context(), c.Config(), args[0])
		},
	}
	return talk
}

// runTalk drives one interactive session. It degrades to protocol-only mode
// when no audio hardware is available.
func runTalk(ctx context.Context, cfg pranthora.Config, agentID string) error {
	var opener pranthora.DeviceOpener
	if mo, err := miniaudio.NewOpener(); err != nil {
		fmt.Fprintln(os.Stderr, "audio unavailable:", err)
	} else {
		opener = mo
		defer mo.Close()
	}

	session := pranthora.NewVoiceSession(cfg, opener)

	done := make(chan struct{})
	session.OnConnected(func() { fmt.Println("connected, speak when ready (q + Enter quits)") })
	session.OnFirstResponse(func(msg string) { fmt.Println("agent:", msg) })
	session.OnTranscript(func(role, text string) { fmt.Printf("%s: %s\n", role, text) })
	session.OnInterruption(func() { fmt.Println("[interrupted]") })
	session.OnAgentSpeakingStart(func() { fmt.Println("[agent speaking]") })
	session.OnAgentSpeakingStop(func() { fmt.Println("[agent silent]") })
	session.OnError(func(msg string) { fmt.Fprintln(os.Stderr, "error:", msg) })
	session.OnDisconnected(func() { close(done) })

	if !session.Start(agentID, nil) {
		return fmt.Errorf("session failed to start")
	}

	// Reader goroutine so a server-side call end is not stuck behind stdin.
	quit := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) == "q" {
				close(quit)
				return
			}
		}
		close(quit)
	}()

	select {
	case <-quit:
		session.Stop()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
		}
	case <-done:
	case <-ctx.Done():
		session.Stop()
		<-done
	}

	stats := session.Stats()
	fmt.Printf("session: %.1fs, %d messages, %d bytes sent, %d bytes received\n",
		stats.DurationSeconds, stats.MessagesReceived, stats.AudioBytesSent, stats.AudioBytesReceived)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
