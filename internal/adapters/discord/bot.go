package discord

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"valuelife/internal/config"
	"valuelife/internal/ports/input"
	"valuelife/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot over the network use case.
func NewBot(cfg *config.Config, network input.NetworkUseCase, translator output.T) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: NewHandler(network, translator),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	switch i.ApplicationCommandData().Name {
	case "sponsor":
		b.handler.HandleSponsor(s, i)
	case "activate":
		b.handler.HandleActivate(s, i)
	case "member":
		b.handler.HandleMember(s, i)
	case "network":
		b.handler.HandleNetwork(s, i)
	case "ledger":
		b.handler.HandleLedger(s, i)
	}
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "sponsor",
			Description: "Add a new participant under a sponsor",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "sponsor", Description: "Sponsor participant id", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "New participant name", Required: true},
			},
		},
		{
			Name:        "activate",
			Description: "Mark a participant active",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Participant id", Required: true},
			},
		},
		{
			Name:        "member",
			Description: "Show a participant's placement and earnings",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Participant id", Required: true},
			},
		},
		{Name: "network", Description: "Show the placement tree and network totals"},
		{Name: "ledger", Description: "Show the latest audit trail entries"},
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range commandDefinitions() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			log.Printf("⚠️ Failed to register command %s: %v", cmd.Name, err)
		}
	}

	fmt.Println("🤖 Bot online! Press CTRL+C to quit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
