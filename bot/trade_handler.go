package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cardbot/models"
	"cardbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleTradeCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing trade subcommand.")
		return
	}

	switch options[0].Name {
	case "offer":
		b.handleTradeOffer(s, i, options[0].Options)
	case "accept":
		b.handleTradeResolve(s, i, options[0].Options, models.TradeStatusAccepted)
	case "reject":
		b.handleTradeResolve(s, i, options[0].Options, models.TradeStatusRejected)
	case "cancel":
		b.handleTradeResolve(s, i, options[0].Options, models.TradeStatusCancelled)
	case "list":
		b.handleTradeList(s, i)
	}
}

func (b *Bot) handleTradeOffer(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error parsing Discord ID: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var itemID int64
	var recipientUser *discordgo.User
	for _, opt := range options {
		switch opt.Name {
		case "item":
			itemID = opt.IntValue()
		case "user":
			recipientUser = opt.UserValue(s)
		}
	}

	if recipientUser == nil {
		b.respondWithError(s, i, "Invalid recipient.")
		return
	}

	toDiscordID, err := strconv.ParseInt(recipientUser.ID, 10, 64)
	if err != nil {
		log.Printf("Error parsing recipient Discord ID %s: %v", recipientUser.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if toDiscordID == discordID {
		b.respondWithError(s, i, "You cannot trade with yourself.")
		return
	}

	// Both sides need accounts before the offer can reference them.
	if _, err := b.accountService.EnsureAccount(ctx, discordID); err != nil {
		log.Printf("Error ensuring account %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if _, err := b.accountService.EnsureAccount(ctx, toDiscordID); err != nil {
		log.Printf("Error ensuring account %d: %v", toDiscordID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	offer, err := b.tradeService.CreateOffer(ctx, discordID, itemID, toDiscordID)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			b.respondWithError(s, i, "You can only offer cards you own. Check the item ID in /inventory.")
			return
		}
		log.Printf("Error creating trade offer from %d to %d: %v", discordID, toDiscordID, err)
		b.respondWithError(s, i, "Unable to create the trade offer. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf("🤝 Trade offer `#%d` created: item `#%d` offered to <@%s>. They can `/trade accept id:%d`.",
		offer.ID, offer.OfferedItemID, recipientUser.ID, offer.ID))
}

func (b *Bot) handleTradeResolve(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption, status models.TradeStatus) {
	ctx := context.Background()

	discordID, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error parsing Discord ID: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if len(options) != 1 {
		b.respondWithError(s, i, "Missing trade offer ID.")
		return
	}
	offerID := options[0].IntValue()

	var offer *models.TradeOffer
	switch status {
	case models.TradeStatusAccepted:
		offer, err = b.tradeService.Accept(ctx, offerID, discordID)
	case models.TradeStatusRejected:
		offer, err = b.tradeService.Reject(ctx, offerID, discordID)
	case models.TradeStatusCancelled:
		offer, err = b.tradeService.Cancel(ctx, offerID, discordID)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfferNotFound):
			b.respondWithError(s, i, "That trade offer does not exist.")
		case errors.Is(err, service.ErrAlreadyResolved):
			b.respondWithError(s, i, "That trade offer was already resolved.")
		case errors.Is(err, service.ErrNotRecipient):
			b.respondWithError(s, i, "Only the player the offer was made to can do that.")
		case errors.Is(err, service.ErrNotOwner):
			b.respondWithError(s, i, "Only the player who made the offer can cancel it.")
		case errors.Is(err, service.ErrItemNotOwned):
			b.respondWithError(s, i, "The offered card is no longer available; the offerer traded it away.")
		default:
			log.Printf("Error resolving trade offer %d for %d: %v", offerID, discordID, err)
			b.respondWithError(s, i, "Unable to resolve the trade offer. Please try again.")
		}
		return
	}

	switch offer.Status {
	case models.TradeStatusAccepted:
		b.respond(s, i, fmt.Sprintf("✅ Trade `#%d` accepted. Item `#%d` is now yours.", offer.ID, offer.OfferedItemID))
	case models.TradeStatusRejected:
		b.respond(s, i, fmt.Sprintf("🚫 Trade `#%d` rejected.", offer.ID))
	case models.TradeStatusCancelled:
		b.respond(s, i, fmt.Sprintf("↩️ Trade `#%d` cancelled.", offer.ID))
	}
}

func (b *Bot) handleTradeList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error parsing Discord ID: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	offers, err := b.tradeService.ListOffers(ctx, discordID)
	if err != nil {
		log.Printf("Error listing trade offers for %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to load your trade offers. Please try again.")
		return
	}

	if len(offers) == 0 {
		b.respond(s, i, "You have no pending trade offers.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📨 **Your pending trades**\n")
	for _, offer := range offers {
		if offer.FromUserID == discordID {
			sb.WriteString(fmt.Sprintf("`#%d` → you offered item `#%d` to <@%d>\n", offer.ID, offer.OfferedItemID, offer.ToUserID))
		} else {
			sb.WriteString(fmt.Sprintf("`#%d` ← <@%d> offers you item `#%d`\n", offer.ID, offer.FromUserID, offer.OfferedItemID))
		}
	}

	b.respond(s, i, sb.String())
}
