package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardbot/models"
	"cardbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleCardCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error parsing Discord ID: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if !b.isAdmin(discordID) {
		b.respondWithError(s, i, "Only catalog admins can use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing card subcommand.")
		return
	}

	switch options[0].Name {
	case "add":
		b.handleCardAdd(s, i, options[0].Options)
	case "list":
		b.handleCardList(s, i)
	case "remove":
		b.handleCardRemove(s, i, options[0].Options)
	}
}

func (b *Bot) handleCardAdd(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var name, rarity string
	var income int64
	var artworkRef *string
	for _, opt := range options {
		switch opt.Name {
		case "name":
			name = opt.StringValue()
		case "rarity":
			rarity = opt.StringValue()
		case "income":
			income = opt.IntValue()
		case "artwork":
			artwork := opt.StringValue()
			artworkRef = &artwork
		}
	}

	card, err := b.cardService.CreateCardDefinition(ctx, name, models.Rarity(rarity), income, artworkRef)
	if err != nil {
		log.Printf("Error creating card definition %q: %v", name, err)
		b.respondWithError(s, i, fmt.Sprintf("Unable to add the card: %v", err))
		return
	}

	b.respond(s, i, fmt.Sprintf("✅ Added card `#%d`: %s", card.ID, FormatCard(card)))
}

func (b *Bot) handleCardList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	cards, err := b.cardService.ListCardDefinitions(ctx)
	if err != nil {
		log.Printf("Error listing card definitions: %v", err)
		b.respondWithError(s, i, "Unable to load the catalog. Please try again.")
		return
	}

	if len(cards) == 0 {
		b.respond(s, i, "The catalog is empty. Add cards with `/card add`.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🃏 **Card catalog** (%d definitions)\n", len(cards)))
	for _, card := range cards {
		sb.WriteString(fmt.Sprintf("`#%d` %s\n", card.ID, FormatCard(card)))
	}

	b.respond(s, i, sb.String())
}

func (b *Bot) handleCardRemove(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	if len(options) != 1 {
		b.respondWithError(s, i, "Missing card definition ID.")
		return
	}
	cardID := options[0].IntValue()

	if err := b.cardService.DeleteCardDefinition(ctx, cardID); err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			b.respondWithError(s, i, "That card definition does not exist.")
			return
		}
		log.Printf("Error deleting card definition %d: %v", cardID, err)
		b.respondWithError(s, i, "Unable to remove the card. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf("🗑️ Removed card definition `#%d` and all copies of it.", cardID))
}
