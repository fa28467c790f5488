package bot

import (
	"context"
	"fmt"
	"strconv"

	"cardbot/events"
	"cardbot/models"

	log "github.com/sirupsen/logrus"
)

// subscribeTradeNotifications delivers a DM to the trade counterparty once
// a resolution commits. Delivery is best effort: a failed or refused DM is
// logged and dropped, never surfaced to the resolver.
func (b *Bot) subscribeTradeNotifications() {
	b.eventBus.Subscribe(events.EventTypeTradeResolved, func(ctx context.Context, event events.Event) {
		resolved, ok := event.(events.TradeResolvedEvent)
		if !ok {
			return
		}

		// Tell the side that did not trigger the resolution.
		var recipientID int64
		var message string
		switch resolved.Status {
		case models.TradeStatusAccepted:
			recipientID = resolved.FromUserID
			message = fmt.Sprintf("✅ Your trade offer `#%d` was accepted; item `#%d` changed hands.", resolved.OfferID, resolved.ItemID)
		case models.TradeStatusRejected:
			recipientID = resolved.FromUserID
			message = fmt.Sprintf("🚫 Your trade offer `#%d` was rejected.", resolved.OfferID)
		case models.TradeStatusCancelled:
			recipientID = resolved.ToUserID
			message = fmt.Sprintf("↩️ Trade offer `#%d` made to you was cancelled by the offerer.", resolved.OfferID)
		default:
			return
		}

		b.notifyUser(recipientID, message)
	})
}

func (b *Bot) notifyUser(discordID int64, message string) {
	channel, err := b.session.UserChannelCreate(strconv.FormatInt(discordID, 10))
	if err != nil {
		log.Debugf("Could not open DM channel to %d: %v", discordID, err)
		return
	}

	if _, err := b.session.ChannelMessageSend(channel.ID, message); err != nil {
		log.Debugf("Could not deliver trade notification to %d: %v", discordID, err)
	}
}
