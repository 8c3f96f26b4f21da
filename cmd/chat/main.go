// Command chat is an interactive terminal client for the classifier API.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"nco-classifier-be/internal/dto"

	"github.com/fatih/color"
)

type envelope[T any] struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) send(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e envelope[any]
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s: %s (%s)", resp.Status, e.Message, e.ErrorCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func main() {
	baseURL := flag.String("api", "http://localhost:3000/api", "API base URL")
	flag.Parse()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 2 * time.Minute}}

	var session envelope[dto.CreateSessionResponse]
	if err := c.send(http.MethodPost, "/session/v1", nil, &session); err != nil {
		color.Red("Failed to create session: %v", err)
		os.Exit(1)
	}
	c.token = session.Data.Token
	threadId := session.Data.ThreadId
	color.Cyan("Session %s, thread %s", session.Data.SessionId, threadId)
	color.Cyan("Describe your work. Type /new for a new chat, /quit to leave.")

	started := false
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		text := strings.TrimSpace(in.Text())
		switch text {
		case "":
			continue
		case "/quit":
			return
		case "/new":
			var res envelope[dto.NewChatResponse]
			if err := c.send(http.MethodPost, "/chat/v1/new", nil, &res); err != nil {
				color.Red("%v", err)
				continue
			}
			threadId, started = res.Data.ThreadId, false
			color.Cyan("New thread %s", threadId)
			continue
		}

		method, path := http.MethodPost, "/chat/v1/start"
		if started {
			method, path = http.MethodPut, "/chat/v1/resume"
		}

		var res envelope[dto.ChatResponse]
		if err := c.send(method, path, dto.ChatRequest{ThreadId: threadId, UserMessage: text}, &res); err != nil {
			color.Red("%v", err)
			continue
		}
		started = true

		switch res.Data.Status {
		case "MATCH_FOUND":
			color.Green("%s", res.Data.Result)
			for i, code := range res.Data.Codes {
				color.Green("  %s  %s", code, res.Data.Titles[i])
			}
			color.Cyan("Thread closed. Type /new to classify another occupation.")
		default:
			color.Yellow("%s", res.Data.Result)
		}
	}
}
