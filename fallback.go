package compro

// Hardcoded fallback payloads. They guarantee the public site always has
// something to render: the footer default is served (not persisted) when no
// footer document exists, and the seed tool uses both as initial content.
// Serving a fallback is recorded as a degraded-mode event.

// DefaultFooter returns the built-in footer content.
func DefaultFooter() *Footer {
	return &Footer{
		CompanyName:        "PT. Digital Mahadata Prima",
		CompanyDescription: "Kami membantu organisasi mentransformasikan bisnis mereka melalui perangkat lunak digital dan layanan TIK yang unggul.",
		NavigationTitle:    "Perusahaan",
		NavigationLinks: []NavigationLink{
			{Label: "Beranda", Href: "/"},
			{Label: "Tentang", Href: "/about"},
			{Label: "Portofolio", Href: "/portfolio"},
			{Label: "Contact", Href: "/contact"},
		},
		ContactTitle: "Contact Us",
		Address:      "No.10 Blok A3, Ruko Dewe Square\nJl. Raya, Bedrek, Siwalanpanji,\nKec. Buduran, Kabupaten Sidoarjo,\nJawa Timur 61252, Indonesia",
		Phone:        "021-22212552",
		MapsEmbedURL: "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3956.2291804495444!2d112.72694777603003!3d-7.439875473307659!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x2dd7e700258d7d87%3A0xc6079ab1e6e22364!2sPT%20DIGITAL%20MAHADATA%20PRIMA%20(CABANG)!5e0!3m2!1sid!2sid!4v1769160832621!5m2!1sid!2sid",
		ShowLogo:     true,
		LogoOpacity:  20,
		SocialLinks:  []SocialLink{},
	}
}

// DefaultAbout returns the built-in about-page content used by the seeder.
func DefaultAbout() *About {
	return &About{
		Title:           "About Digital Mahadata Prima",
		HeroTitle:       "Tentang Digital Mahadata Prima",
		HeroDescription: "Kami adalah perusahaan teknologi yang berfokus pada transformasi digital untuk bisnis modern.",
		OurStory: StorySection{
			Title:   "Cerita Kami",
			Content: "Digital Mahadata Prima didirikan dengan visi untuk membantu perusahaan berkembang melalui teknologi digital yang inovatif.",
		},
		Values: []CompanyValue{
			{Icon: "💡", Title: "Innovation", Description: "Selalu mencari cara baru dan lebih baik"},
			{Icon: "⭐", Title: "Quality", Description: "Mengutamakan kualitas dalam setiap project"},
			{Icon: "🤝", Title: "Collaboration", Description: "Bekerja sama untuk mencapai tujuan bersama"},
		},
		Statistics: Statistics{Title: "By the Numbers"},
		CTA: CallToAction{
			Title: "Ready to Work With Us?",
		},
	}
}

// DefaultServices returns the built-in service offerings used by the seeder.
func DefaultServices() []Service {
	return []Service{
		{
			Title:       "Web Development",
			Description: "Pengembangan aplikasi web modern dengan teknologi terdepan",
			Icon:        "💻",
			Category:    "software",
			Features: []Feature{
				{Feature: "React/Next.js"},
				{Feature: "Node.js Backend"},
				{Feature: "Database Integration"},
				{Feature: "API Development"},
			},
			Status: ServiceStatusActive,
			Order:  1,
		},
		{
			Title:       "Mobile Development",
			Description: "Aplikasi mobile native dan cross-platform untuk iOS dan Android",
			Icon:        "📱",
			Category:    "software",
			Features: []Feature{
				{Feature: "React Native"},
				{Feature: "Flutter"},
				{Feature: "iOS/Android Native"},
				{Feature: "Cross-platform"},
			},
			Status: ServiceStatusActive,
			Order:  2,
		},
	}
}

// DefaultPages returns the core site pages used by the seeder.
func DefaultPages() []Page {
	pages := []Page{
		{Title: "Beranda", Slug: "home", PageType: PageTypeHome, Navigation: PageNavigation{ShowInMainMenu: true, MenuOrder: 1}},
		{Title: "Tentang", Slug: "about", PageType: PageTypeAbout, Navigation: PageNavigation{ShowInMainMenu: true, MenuOrder: 2}},
		{Title: "Layanan", Slug: "services", PageType: PageTypeServices, Navigation: PageNavigation{ShowInMainMenu: true, MenuOrder: 3}},
		{Title: "Portofolio", Slug: "portfolio", PageType: PageTypePortfolio, Navigation: PageNavigation{ShowInMainMenu: true, MenuOrder: 4}},
		{Title: "Contact", Slug: "contact", PageType: PageTypeContact, Navigation: PageNavigation{ShowInMainMenu: true, MenuOrder: 5}, Content: PageContent{HasHeroSection: true, HasContactForm: true}},
	}
	for i := range pages {
		pages[i].Status = PageStatusPublished
		pages[i].SEO.MetaTitle = pages[i].Title
		pages[i].Content.HasHeroSection = true
		pages[i].Analytics.TrackPageViews = true
	}
	return pages
}
