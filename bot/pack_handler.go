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

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error parsing Discord ID: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := b.accountService.EnsureAccount(ctx, discordID)
	if err != nil {
		log.Printf("Error ensuring account %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf("Your current balance: **%s coins**", FormatCoins(account.Coins)))
}

func (b *Bot) handleFreePack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error parsing Discord ID: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, err := b.accountService.EnsureAccount(ctx, discordID); err != nil {
		log.Printf("Error ensuring account %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	cards, err := b.packService.ClaimFreePack(ctx, discordID)
	if err != nil {
		var cooldownErr *service.CooldownError
		if errors.As(err, &cooldownErr) {
			b.respondWithError(s, i, fmt.Sprintf("Your free pack is on cooldown. Try again in **%s**.", FormatCooldown(cooldownErr.Remaining)))
			return
		}
		log.Printf("Error claiming free pack for %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to open your free pack. Please try again.")
		return
	}

	b.respond(s, i, formatPack("🎁 Your free pack:", cards))
}

func (b *Bot) handleShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var sb strings.Builder
	sb.WriteString("🛒 **Pack shop**\n")
	for n, offer := range b.config.ShopOffers {
		sb.WriteString(fmt.Sprintf("`%d` — %d packs of cards for **%s coins**\n", n+1, offer.Count, FormatCoins(offer.Price)))
	}
	sb.WriteString("Buy with `/buy bundle:<number>`")

	b.respond(s, i, sb.String())
}

func (b *Bot) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error parsing Discord ID: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) != 1 {
		b.respondWithError(s, i, "Please pick a bundle number from /shop.")
		return
	}

	bundle := int(options[0].IntValue())
	if bundle < 1 || bundle > len(b.config.ShopOffers) {
		b.respondWithError(s, i, fmt.Sprintf("Unknown bundle. Pick a number between 1 and %d.", len(b.config.ShopOffers)))
		return
	}
	offer := b.config.ShopOffers[bundle-1]

	if _, err := b.accountService.EnsureAccount(ctx, discordID); err != nil {
		log.Printf("Error ensuring account %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	cards, err := b.packService.PurchasePack(ctx, discordID, offer.Count, offer.Price)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientFunds) {
			b.respondWithError(s, i, fmt.Sprintf("Not enough coins: this bundle costs **%s coins**.", FormatCoins(offer.Price)))
			return
		}
		log.Printf("Error purchasing pack for %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to complete the purchase. Please try again.")
		return
	}

	header := fmt.Sprintf("📦 You bought %d cards for **%s coins**:", offer.Count, FormatCoins(offer.Price))
	b.respond(s, i, formatPack(header, cards))
}

func formatPack(header string, cards []*models.Card) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, card := range cards {
		sb.WriteString("\n• ")
		sb.WriteString(FormatCard(card))
	}
	return sb.String()
}
