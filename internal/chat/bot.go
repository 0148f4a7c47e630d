package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"financeiro/internal/core"
	"financeiro/internal/ledger"
	"financeiro/internal/services"
	"financeiro/internal/store"
)

const helpText = "Comandos disponíveis:\n" +
	"/start – configurar (ou reconfigurar) o perfil\n" +
	"/registrar Nome Valor Categoria – anotar um gasto\n" +
	"/relatorio – resumo do dia\n" +
	"/relatorio_semanal – resumo da semana\n" +
	"/relatorio_mensal – resumo do mês\n" +
	"/ajuda – esta mensagem"

// Bot routes one conversation: slash commands for the day-to-day
// operations, plain text into the onboarding machine. A deployment is
// single-tenant, so there is exactly one Conversation to track.
type Bot struct {
	store *store.Handle
	svc   *services.ExpenseService

	mu   sync.Mutex
	conv Conversation
}

func NewBot(h *store.Handle, svc *services.ExpenseService) *Bot {
	return &Bot{store: h, svc: svc}
}

// Handle processes one incoming message and returns the reply text.
// Validation problems become corrective replies; only storage write
// failures surface as errors.
func (b *Bot) Handle(ctx context.Context, text string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		return b.command(ctx, text)
	}
	if b.conv.Active() {
		return b.advanceOnboarding(ctx, text)
	}
	return "Não entendi. Use /ajuda para ver os comandos.", nil
}

func (b *Bot) command(ctx context.Context, text string) (string, error) {
	fields := strings.Fields(text)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/start":
		conv, reply := Begin()
		b.conv = conv
		return reply, nil
	case "/ajuda":
		return helpText, nil
	case "/registrar":
		return b.register(ctx, args)
	case "/relatorio":
		return b.report(ctx, ledger.Daily)
	case "/relatorio_semanal":
		return b.report(ctx, ledger.Weekly)
	case "/relatorio_mensal":
		return b.report(ctx, ledger.Monthly)
	}
	return "Não conheço esse comando. Use /ajuda.", nil
}

func (b *Bot) register(ctx context.Context, args []string) (string, error) {
	onboarded, err := b.isOnboarded(ctx)
	if err != nil {
		return "", err
	}
	if !onboarded {
		return "Antes de registrar, configure seu perfil com /start.", nil
	}
	if len(args) < 2 {
		return "Use: /registrar Nome Valor Categoria", nil
	}

	name := core.Capitalize(args[0])
	amount := args[1]
	category := strings.Join(args[2:], " ")

	entry, _, err := b.svc.RecordExpense(ctx, name, amount, category)
	switch {
	case errors.Is(err, core.ErrUnknownParticipant):
		return fmt.Sprintf("O nome '%s' não está cadastrado.", name), nil
	case errors.Is(err, core.ErrInvalidAmount):
		return "Valor inválido. Use números, exemplo: 50 ou 50,00", nil
	case err != nil:
		return "", fmt.Errorf("record expense: %w", err)
	}

	return fmt.Sprintf("Gasto registrado: %s gastou %s com %s hoje.",
		name, entry.Amount.Reais(), entry.Category), nil
}

func (b *Bot) report(ctx context.Context, w ledger.Window) (string, error) {
	onboarded, err := b.isOnboarded(ctx)
	if err != nil {
		return "", err
	}
	if !onboarded {
		return "Antes de pedir relatórios, configure seu perfil com /start.", nil
	}
	return b.svc.Report(ctx, w)
}

func (b *Bot) advanceOnboarding(ctx context.Context, text string) (string, error) {
	var reply string
	err := b.store.Update(ctx, func(st *core.State) error {
		b.conv, reply = Advance(b.conv, st, text)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("advance onboarding: %w", err)
	}
	return reply, nil
}

func (b *Bot) isOnboarded(ctx context.Context) (bool, error) {
	var onboarded bool
	err := b.store.View(ctx, func(st core.State) error {
		onboarded = st.IsOnboarded()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check onboarding: %w", err)
	}
	return onboarded, nil
}
