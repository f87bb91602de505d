package nota

import (
	"fmt"
	"strings"
	"time"

	bookingModel "kos-booking/models/booking"
	"kos-booking/utils"
)

const dateLayout = "02 January 2006"

// Render produces the printable receipt for a booking. The booking must be
// fully loaded (Kos and User joined); the controller resolves it through the
// tenant-scoped detail read, so authorization has already happened.
func Render(b *bookingModel.Booking, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("==========================================\n")
	sb.WriteString("            NOTA PEMESANAN KOS            \n")
	sb.WriteString("==========================================\n\n")

	writeRow(&sb, "Booking ID", b.Uuid)
	writeRow(&sb, "Kos", b.Kos.Name)
	writeRow(&sb, "Alamat", b.Kos.Address)
	writeRow(&sb, "Penyewa", b.User.Name)
	writeRow(&sb, "Email", b.User.Email)
	writeRow(&sb, "Check-in", b.StartDate.Format(dateLayout))
	writeRow(&sb, "Check-out", b.EndDate.Format(dateLayout))
	writeRow(&sb, "Status", b.Status.String())
	writeRow(&sb, "Harga / bulan", utils.FormatRupiah(b.Kos.PricePerMonth))

	sb.WriteString("\n------------------------------------------\n")
	sb.WriteString(fmt.Sprintf("Dicetak: %s\n", generatedAt.Format("02 January 2006 15:04")))
	sb.WriteString("==========================================\n")

	return sb.String()
}

func writeRow(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf("%-14s: %s\n", label, value))
}
