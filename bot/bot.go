package bot

import (
	"fmt"

	"cardbot/config"
	"cardbot/events"
	"cardbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token           string
	GuildID         string
	AdminDiscordIDs []int64
	ShopOffers      []config.ShopOffer
}

type Bot struct {
	config         Config
	session        *discordgo.Session
	accountService service.AccountService
	packService    service.PackService
	tradeService   service.TradeService
	cardService    service.CardService
	eventBus       *events.Bus
}

func New(config Config, accountService service.AccountService, packService service.PackService, tradeService service.TradeService, cardService service.CardService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	bot := &Bot{
		config:         config,
		session:        dg,
		accountService: accountService,
		packService:    packService,
		tradeService:   tradeService,
		cardService:    cardService,
		eventBus:       eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Trade notifications go out only after the owning transaction commits
	bot.subscribeTradeNotifications()

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.handleBalance(s, i)
	case "freepack":
		b.handleFreePack(s, i)
	case "shop":
		b.handleShop(s, i)
	case "buy":
		b.handleBuy(s, i)
	case "inventory":
		b.handleInventory(s, i)
	case "trade":
		b.handleTradeCommand(s, i)
	case "card":
		b.handleCardCommand(s, i)
	}
}

// isAdmin reports whether the Discord user may manage the card catalog
func (b *Bot) isAdmin(discordID int64) bool {
	for _, id := range b.config.AdminDiscordIDs {
		if id == discordID {
			return true
		}
	}
	return false
}
