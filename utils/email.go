package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/smtp"
	"os"
	"strconv"

	jwemail "github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// BookingConfirmationData dữ liệu cho email xác nhận đặt vé
type BookingConfirmationData struct {
	PublicCode  string
	MovieTitle  string
	CinemaName  string
	RoomName    string
	Showtime    string
	Seats       string
	TotalAmount int64
	QRContent   string
}

var bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(`
<h2>Đặt vé thành công</h2>
<p>Mã đơn: <b>{{.PublicCode}}</b></p>
<p>Phim: {{.MovieTitle}}</p>
<p>Rạp: {{.CinemaName}} — {{.RoomName}}</p>
<p>Suất chiếu: {{.Showtime}}</p>
<p>Ghế: {{.Seats}}</p>
<p>Tổng tiền: {{.TotalAmount}}đ</p>
<p>Xuất trình mã QR dưới đây tại quầy soát vé:</p>
<img src="cid:booking-qr.png" alt="QR vé"/>
`))

// SendBookingConfirmationEmail gửi email xác nhận kèm QR nhúng inline.
// Chạy async để không delay response.
func SendBookingConfirmationEmail(to string, data BookingConfirmationData) {
	go func() {
		var body bytes.Buffer
		if err := bookingConfirmationTmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		qr, err := GenerateQRCode(data.QRContent, 256)
		if err != nil {
			log.Printf("Lỗi tạo QR cho email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Xác nhận đặt vé #"+data.PublicCode)
		m.SetBody("text/html", body.String())
		m.Embed("booking-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qr)
			return err
		}))

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()
}

// SendPasswordResetEmail gửi mail text thường chứa link đặt lại mật khẩu
func SendPasswordResetEmail(to, resetLink string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	e := jwemail.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = "Đặt lại mật khẩu"
	e.Text = []byte(fmt.Sprintf("Nhấn vào link sau để đặt lại mật khẩu (hết hạn sau 30 phút):\n%s", resetLink))

	return e.Send(host+":"+port, smtp.PlainAuth("", username, password, host))
}
