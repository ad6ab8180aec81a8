package main

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"

	"vergoReports/contracts"
)

const WebhookWorkersCount = 5

type WebhookPayload struct {
	SheetId string            `json:"sheet_id"`
	Cells   []*contracts.Cell `json:"cells"`
}

type WebhookSendCommand struct {
	Webhook string
	Payload WebhookPayload
}

// WebhookDispatcher POSTs recalculation summaries to per-sheet
// subscribers from a fixed worker pool.
type WebhookDispatcher struct {
	queue    chan WebhookSendCommand
	mu       sync.RWMutex
	webhooks map[string]string
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, 20),
		webhooks: map[string]string{},
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(sheetId string, webhookUrl string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if webhookUrl == "" {
		delete(manager.webhooks, sheetId)
	} else {
		manager.webhooks[sheetId] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(sheetId string) string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	return manager.webhooks[sheetId]
}

func (manager *WebhookDispatcher) Notify(sheetId string, cells []*contracts.Cell) {
	webhook := manager.GetWebhookUrl(sheetId)
	if webhook == "" {
		return
	}

	go func() {
		manager.queue <- WebhookSendCommand{
			Webhook: webhook,
			Payload: WebhookPayload{SheetId: sheetId, Cells: cells},
		}
	}()
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go manager.runWebhookSenderWorker()
	}
}

func (manager *WebhookDispatcher) Close() {
	close(manager.queue)
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	client := &http.Client{
		Timeout: time.Second * 5,
	}

	var response *http.Response
	var err error

	for command := range manager.queue {
		payload, _ := json.Marshal(command.Payload)
		response, err = client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))

		if err != nil {
			fmt.Printf("Webhook send error: %s\n", err)
		} else if response.StatusCode >= 300 {
			fmt.Printf("Unexpected webhook response HTTP status: %s\n", response.Status)
		}
	}
}
