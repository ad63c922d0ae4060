package main

import (
	"context"
	"log"
	"time"

	"buildledger/internal/config"
	"buildledger/internal/database"
	"buildledger/internal/domain/auth"
	"buildledger/internal/domain/catalog"
	"buildledger/internal/domain/client"
	"buildledger/internal/domain/deletion"
	"buildledger/internal/domain/invoice"
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
	"buildledger/internal/domain/quotation"
	"buildledger/internal/domain/settings"
	"buildledger/internal/pkg/ids"
	"buildledger/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	backend, closeBackend, err := database.OpenBackend(ctx, cfg, nil)
	if err != nil {
		log.Fatal("open store backend: ", err)
	}
	defer closeBackend()

	gen, err := ids.NewGenerator(cfg.SnowflakeNode)
	if err != nil {
		log.Fatal("id generator: ", err)
	}
	db := store.New(backend)
	now := time.Now().UTC()

	// ================== USERS ==================
	log.Println("Creating users...")
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		log.Fatal("hash password: ", err)
	}
	userHash, err := auth.HashPassword("user123")
	if err != nil {
		log.Fatal("hash password: ", err)
	}
	adminUser := auth.User{ID: "1", Name: "Admin User", Email: "admin@company.com", Password: adminHash, Role: auth.RoleAdmin, CreatedAt: now}
	staffUser := auth.User{ID: "2", Name: "Regular User", Email: "user@company.com", Password: userHash, Role: auth.RoleUser, CreatedAt: now}
	must(auth.NewRepository(db).Replace(ctx, []auth.User{adminUser, staffUser}))
	log.Println("Admin created: admin@company.com / admin123")
	log.Println("User created: user@company.com / user123")

	// ================== COMPANY ==================
	log.Println("Writing company settings...")
	settingsRepo := settings.NewRepository(db)
	must(settingsRepo.Put(ctx, settings.CompanySettings{
		ID:                  "company",
		Name:                "Northline Renovations",
		Email:               "office@northline.example",
		Phone:               "(555) 010-2000",
		Address:             "120 Harbour St",
		City:                "Halifax",
		TaxID:               "RT-448812",
		BankName:            "First Coastal",
		AccountNumber:       "00112233",
		DefaultTaxRate:      15,
		DefaultPaymentTerms: "Net 30",
	}))

	// ================== CATALOGS ==================
	log.Println("Seeding catalogs...")
	tilePerSqFt := 1.1
	tileLast := 4.25
	electricianJob := 350.0
	rating := 4.7
	materials := []catalog.Material{
		{ID: "mat-drywall", Name: "Drywall sheet 4x8", Unit: "sheet", Rate: 18.5, Category: "walls", MaterialType: catalog.MaterialBuilding, RoomTypes: []string{"bedroom", "living-room", "basement"}, CreatedAt: now},
		{ID: "mat-lumber", Name: "2x4 stud 8ft", Unit: "piece", Rate: 6.75, Category: "framing", MaterialType: catalog.MaterialBuilding, CreatedAt: now},
		{ID: "mat-tile", Name: "Porcelain floor tile", Unit: "sqft", Rate: 4.5, Category: "flooring", MaterialType: catalog.MaterialFinishing, RoomTypes: []string{"bathroom", "kitchen"}, DefaultQuantityPerSqFt: &tilePerSqFt,
			VendorLinks: []catalog.VendorLink{{VendorName: "Tile Depot", URL: "https://tiledepot.example/porcelain", LastPrice: &tileLast, LastUpdated: now.Format(time.DateOnly)}}, CreatedAt: now},
		{ID: "mat-paint", Name: "Interior paint", Unit: "gallon", Rate: 42, Category: "paint", MaterialType: catalog.MaterialFinishing, RoomTypes: []string{"bedroom", "living-room", "kitchen", "bathroom"}, CreatedAt: now},
	}
	labor := []catalog.Labor{
		{ID: "lab-framer", Name: "Framing carpenter", HourlyRate: 55, Category: "structural", Trade: "carpentry", CreatedAt: now},
		{ID: "lab-electrician", Name: "Licensed electrician", HourlyRate: 85, JobRate: &electricianJob, Category: "electrical", Trade: "electrical",
			Providers: []catalog.TradeProvider{{ID: "prov-1", Name: "Bright Spark Electric", Phone: "(555) 010-3300", HourlyRate: 85, Rating: &rating}}, CreatedAt: now},
		{ID: "lab-tiler", Name: "Tile setter", HourlyRate: 60, Category: "finishing", Trade: "tiling", CreatedAt: now},
		{ID: "lab-painter", Name: "Painter", HourlyRate: 45, Category: "finishing", Trade: "painting", CreatedAt: now},
	}
	rooms := []catalog.RoomTemplate{
		{ID: "room-bathroom", RoomType: "bathroom", DefaultMaterials: []string{"mat-tile", "mat-paint"}, DefaultLabor: []string{"lab-tiler", "lab-painter"}, EstimatedHoursPerSqFt: 0.6},
		{ID: "room-kitchen", RoomType: "kitchen", DefaultMaterials: []string{"mat-tile", "mat-paint"}, DefaultLabor: []string{"lab-electrician", "lab-tiler"}, EstimatedHoursPerSqFt: 0.5},
		{ID: "room-bedroom", RoomType: "bedroom", DefaultMaterials: []string{"mat-drywall", "mat-paint"}, DefaultLabor: []string{"lab-framer", "lab-painter"}, EstimatedHoursPerSqFt: 0.3},
	}
	trades := []catalog.Trade{
		{ID: "trade-electrical", Name: "Electrical", Category: "electrical", Providers: []catalog.TradeProvider{{ID: "prov-1", Name: "Bright Spark Electric", Phone: "(555) 010-3300", HourlyRate: 85, Rating: &rating}}, CreatedAt: now},
		{ID: "trade-tiling", Name: "Tiling", Category: "finishing", Providers: []catalog.TradeProvider{}, CreatedAt: now},
	}
	costs := []catalog.AdditionalCost{
		{ID: "cost-permit", Name: "Building permit", DefaultCost: 450, Category: catalog.CostPermit, IsEditable: true, CreatedAt: now},
		{ID: "cost-bin", Name: "Waste bin rental", DefaultCost: 380, Category: catalog.CostWaste, IsEditable: true, CreatedAt: now},
		{ID: "cost-inspection", Name: "Final inspection", DefaultCost: 150, Category: catalog.CostInspection, CreatedAt: now},
	}
	must(catalog.NewRepository(db).Seed(ctx, materials, labor, rooms, trades, costs))

	// ================== DOCUMENT COLLECTIONS ==================
	log.Println("Resetting clients, projects, quotations, invoices, deletion requests...")
	clientRepo := client.NewRepository(db)
	projectRepo := project.NewRepository(db, clientRepo)
	quotationRepo := quotation.NewRepository(db, projectRepo, clientRepo)
	invoiceRepo := invoice.NewRepository(db, projectRepo, clientRepo)
	must(clientRepo.Replace(ctx, []client.Client{}))
	must(projectRepo.Replace(ctx, []project.Project{}))
	must(quotationRepo.Replace(ctx, []quotation.Quotation{}))
	must(invoiceRepo.Replace(ctx, []invoice.Invoice{}))
	must(deletion.NewRepository(db).Replace(ctx, []deletion.Request{}))

	staff := auth.Actor{ID: staffUser.ID, Name: staffUser.Name, Role: staffUser.Role}
	clientSvc := client.NewService(clientRepo, gen, nil)
	projectSvc := project.NewService(projectRepo, clientRepo, gen, nil)
	quotationSvc := quotation.NewService(quotationRepo, projectRepo, settingsRepo, gen, nil, nil)
	invoiceSvc := invoice.NewService(invoiceRepo, projectRepo, quotationRepo, settingsRepo, gen, nil, nil)

	log.Println("Creating clients and projects...")
	c, err := clientSvc.Create(ctx, client.CreateClientRequest{Name: "Morgan Reyes", Email: "morgan@example.com", Phone: "(555) 010-4411", Address: "8 Birch Lane", City: "Halifax"})
	must(err)
	p, err := projectSvc.Create(ctx, project.CreateProjectRequest{
		Name:      "Main bathroom renovation",
		ClientID:  c.ID,
		Location:  "8 Birch Lane",
		StartDate: now.Format(time.DateOnly),
		Status:    project.StatusActive,
		Rooms: []project.Room{{
			Name:      "Main bath",
			Type:      "bathroom",
			Width:     8,
			Length:    10,
			Materials: []project.RoomMaterial{{MaterialID: "mat-tile", MaterialName: "Porcelain floor tile", Quantity: 88, Rate: 4.5}},
			Labor:     []project.RoomLabor{{LaborID: "lab-tiler", LaborName: "Tile setter", Hours: 16, Rate: 60}},
		}},
	})
	must(err)

	log.Println("Creating quotation and invoice...")
	q, err := quotationSvc.Create(ctx, staff, quotation.CreateQuotationRequest{
		ProjectID: p.ID,
		Phase:     quotation.PhaseFull,
		Items: []pricing.LineItem{
			{Type: pricing.ItemMaterial, ItemID: "mat-tile", ItemName: "Porcelain floor tile", Quantity: 88, Rate: 4.5},
			{Type: pricing.ItemLabor, ItemID: "lab-tiler", ItemName: "Tile setter", Quantity: 16, Rate: 60},
		},
		Terms: "50% deposit on acceptance",
	})
	must(err)
	inv, err := invoiceSvc.Create(ctx, staff, invoice.CreateInvoiceRequest{QuotationID: q.ID, Phase: invoice.PhaseStructural})
	must(err)

	log.Printf("Seed complete: %s, %s", q.QuotationNumber, inv.InvoiceNumber)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
