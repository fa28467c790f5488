package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
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

	entries, err := b.accountService.ListInventory(ctx, discordID)
	if err != nil {
		log.Printf("Error listing inventory for %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to load your collection. Please try again.")
		return
	}

	if len(entries) == 0 {
		b.respond(s, i, "Your collection is empty. Claim a `/freepack` to get started!")
		return
	}

	var totalIncome int64
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗂️ **Your collection** (%d cards)\n", len(entries)))
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("`#%d` %s\n", entry.Item.ID, FormatCard(&entry.Card)))
		totalIncome += entry.Card.CoinsPerHour
	}
	sb.WriteString(fmt.Sprintf("Passive income: **+%s coins/h**", FormatCoins(totalIncome)))

	b.respond(s, i, sb.String())
}
