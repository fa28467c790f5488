package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cardbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// FormatCoins formats a coin amount with thousand separators
func FormatCoins(coins int64) string {
	str := fmt.Sprintf("%d", coins)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatCard renders a card as "Name (rarity, +N/h)"
func FormatCard(card *models.Card) string {
	return fmt.Sprintf("**%s** (%s, +%d/h)", card.Name, card.Rarity, card.CoinsPerHour)
}

// FormatCooldown renders a remaining cooldown as "XXm YYs"
func FormatCooldown(remaining time.Duration) string {
	remaining = remaining.Round(time.Second)
	minutes := int(remaining.Minutes())
	seconds := int(remaining.Seconds()) % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// interactionUserID extracts the invoking user's Discord ID as int64.
// Guild interactions carry a Member, DM interactions only a User.
func interactionUserID(i *discordgo.InteractionCreate) (int64, error) {
	var raw string
	switch {
	case i.Member != nil && i.Member.User != nil:
		raw = i.Member.User.ID
	case i.User != nil:
		raw = i.User.ID
	default:
		return 0, fmt.Errorf("interaction has no user")
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Printf("Error sending response: %v", err)
	}
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending error response: %v", err)
	}
}
