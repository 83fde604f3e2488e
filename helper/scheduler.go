package helper

import (
	"cinema_booking/booking"
	"cinema_booking/model"
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var (
	movieScheduler  gocron.Scheduler
	maintenanceCron *cron.Cron
)

// AutoUpdateMovieStatus quét toàn bộ phim và đẩy trạng thái theo ngày:
// COMING_SOON → NOW_SHOWING khi tới ngày khởi chiếu, NOW_SHOWING → ENDED khi
// qua ngày kết thúc.
func AutoUpdateMovieStatus(db *gorm.DB) {
	log.Println("[CRON] AutoUpdateMovieStatus triggered")

	loc := time.FixedZone("ICT", 7*3600)
	today := time.Now().In(loc).Truncate(24 * time.Hour)

	var movies []model.Movie
	if err := db.Find(&movies).Error; err != nil {
		log.Printf("Lỗi khi quét phim: %v", err)
		return
	}

	for _, movie := range movies {
		updated := false

		releaseDate := movie.ReleaseDate.In(loc).Truncate(24 * time.Hour)
		if !today.Before(releaseDate) && movie.Status == model.MovieComingSoon {
			movie.Status = model.MovieNowShowing
			updated = true
		}

		if movie.EndDate != nil {
			endDate := movie.EndDate.In(loc).Truncate(24 * time.Hour)
			if today.After(endDate) && movie.Status == model.MovieNowShowing {
				movie.Status = model.MovieEnded
				updated = true
			}
		}

		if updated {
			if err := db.Save(&movie).Error; err != nil {
				log.Printf("Lỗi cập nhật trạng thái phim '%s': %v", movie.Title, err)
			} else {
				log.Printf("Cập nhật trạng thái phim '%s' → %s", movie.Title, movie.Status)
			}
		}
	}
}

func StartMovieStatusScheduler(db *gorm.DB) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	movieScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoUpdateMovieStatus, db),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Movie status scheduler started (00:05 ICT)")
}

func StopMovieStatusScheduler() {
	if movieScheduler != nil {
		_ = movieScheduler.Shutdown()
	}
}

// StartBookingMaintenance chạy 2 việc dọn dẹp định kỳ:
//   - mỗi phút: xoá hold quá hạn (sweep chỉ là garbage collection, mọi đường
//     đọc đã tự lọc theo holdUntil)
//   - mỗi 5 phút: expire các đơn PENDING bị bỏ quên để ghế bán lại được
func StartBookingMaintenance(svc *booking.Service) {
	maintenanceCron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := maintenanceCron.AddFunc("* * * * *", func() {
		removed, err := svc.CleanupExpiredHolds(context.Background())
		if err != nil {
			log.Printf("Lỗi dọn hold quá hạn: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("Đã dọn %d hold quá hạn", removed)
		}
	})
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	_, err = maintenanceCron.AddFunc("*/5 * * * *", func() {
		expired, err := svc.ExpireAbandonedBookings(context.Background())
		if err != nil {
			log.Printf("Lỗi expire đơn bỏ quên: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("Đã expire %d đơn bỏ quên", expired)
		}
	})
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	maintenanceCron.Start()
	log.Println("Booking maintenance scheduler started")
}

func StopBookingMaintenance() {
	if maintenanceCron != nil {
		maintenanceCron.Stop()
	}
}
