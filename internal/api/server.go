package api

import (
	"log"

	"github.com/Thaththathirian/lifeboat-admin-sub000/config"
	"github.com/Thaththathirian/lifeboat-admin-sub000/infra/queue"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/api/rest/handlers"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/helper"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/repository"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/services"
	"github.com/Thaththathirian/lifeboat-admin-sub000/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260831

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.StudentWorkflow{},
		&domain.StudentProfile{},
		&domain.StudentDocument{},
		&domain.PaymentRecord{},
		&domain.PaymentAllotment{},
		&domain.College{},
		&domain.Donor{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	seedRoles(db)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	if cfg.KafkaBroker != "" {
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			"scholarship-notifier",
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			services.NewStatusNotifier(),
		)
		go consumer.Listen()
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	wfRepo := repository.NewWorkflowRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	donorRepo := repository.NewDonorRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRoleRepo := repository.NewUserRoleRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, wfRepo, roleRepo, userRoleRepo, authHelper)
	studentSvc := services.NewStudentService(wfRepo, userRepo, paymentRepo, up, kafkaProducer)
	adminSvc := services.NewAdminService(wfRepo, userRepo, paymentRepo, collegeRepo, donorRepo, auditRepo, kafkaProducer)

	// ---------- Handlers ----------
	handlers.NewAuthHandler(authSvc).SetupRoutes(app)
	handlers.NewStudentHandler(studentSvc, authHelper).SetupRoutes(app)
	handlers.NewAdminHandler(adminSvc, authSvc, authHelper).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func seedRoles(db *gorm.DB) {
	codes := []string{domain.RoleAdmin, domain.RoleStudent, domain.RoleDonor, domain.RoleCollege}

	for _, code := range codes {
		var r domain.Role
		err := db.Where("code = ?", code).First(&r).Error
		if err == gorm.ErrRecordNotFound {
			_ = db.Create(&domain.Role{
				Code: code,
				Name: code,
			}).Error
		}
	}
}
