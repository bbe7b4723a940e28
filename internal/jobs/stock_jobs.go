package jobs

import (
	"context"
	"fmt"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/utils"
)

// FlagExpiringStock warns admins about records whose next unit expires
// within domain.ExpiryUrgentDays.
func (jr *JobRunner) FlagExpiringStock() {
	jr.runWithRecovery("FlagExpiringStock", jr.flagExpiringStock)
}

func (jr *JobRunner) flagExpiringStock(ctx context.Context) (int, error) {
	overview, err := jr.services.Inventory.Overview(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load inventory: %w", err)
	}

	sent := 0
	for _, rec := range overview.Records {
		if rec.NextExpiry == nil || !rec.NextExpiry.IsUrgent {
			continue
		}
		msg := fmt.Sprintf("%s at %s has units expiring on %s (%d day(s)).",
			rec.BloodType, rec.Location, utils.FormatDate(rec.NextExpiry.Date), rec.NextExpiry.DaysUntil)
		n, err := jr.services.Notifications.NotifyRoleOnce(ctx, domain.UserRoleAdmin, "Blood units expiring soon", msg, domain.NotificationTypeWarning)
		if err != nil {
			logger.Error("Failed to flag expiring stock", "bloodType", rec.BloodType, "error", err)
			continue
		}
		sent += n
	}
	return sent, nil
}

// FlagCriticalStock alerts admins about records at critical stock. Admins
// who have not read the previous alert for a record are not alerted again.
func (jr *JobRunner) FlagCriticalStock() {
	jr.runWithRecovery("FlagCriticalStock", jr.flagCriticalStock)
}

func (jr *JobRunner) flagCriticalStock(ctx context.Context) (int, error) {
	overview, err := jr.services.Inventory.Overview(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load inventory: %w", err)
	}

	sent := 0
	for _, rec := range overview.Records {
		if rec.Stock.Level != domain.StockLevelCritical {
			continue
		}
		msg := fmt.Sprintf("Only %d unit(s) of %s available at %s.", rec.UnitsAvailable, rec.BloodType, rec.Location)
		n, err := jr.services.Notifications.NotifyRoleOnce(ctx, domain.UserRoleAdmin, "Critical stock level", msg, domain.NotificationTypeError)
		if err != nil {
			logger.Error("Failed to flag critical stock", "bloodType", rec.BloodType, "error", err)
			continue
		}
		sent += n
	}
	return sent, nil
}
