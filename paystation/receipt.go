package paystation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
)

// Receipt is proof of purchase, independent of station state after Buy.
type Receipt struct {
	id      uuid.UUID
	minutes Minutes
}

func newReceipt(minutes Minutes) Receipt {
	return Receipt{id: uuid.New(), minutes: minutes}
}

// Value is parking time bought.
func (r Receipt) Value() Minutes { return r.minutes }
func (r Receipt) ID() uuid.UUID  { return r.id }

func (r Receipt) String() string {
	return fmt.Sprintf("receipt(id=%s minutes=%d)", r.id.String(), r.minutes)
}

// QRText is payload printed as QR code on paper receipt.
func (r Receipt) QRText() string {
	return fmt.Sprintf("m=%d&id=%s", r.minutes, r.id.String())
}

func (r Receipt) QR(level qrcode.RecoveryLevel) (*qrcode.QRCode, error) {
	qr, err := qrcode.New(r.QRText(), level)
	if err != nil {
		return nil, errors.Annotatef(err, "receipt QR id=%s", r.id.String())
	}
	return qr, nil
}
