package model

// Site is the static content of the landing page.
type Site struct {
	Hero         Hero         `yaml:"hero"`
	About        About        `yaml:"about"`
	Services     []Service    `yaml:"services"`
	Team         []Member     `yaml:"team"`
	ClientsTitle string       `yaml:"clientsTitle"`
	Clients      []ClientLogo `yaml:"clients"`
}

type Hero struct {
	Badge     string `yaml:"badge"`
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Subtitle  string `yaml:"subtitle"`
	Image     string `yaml:"image"`
	ImageAlt  string `yaml:"imageAlt"`
}

type About struct {
	Title string `yaml:"title"`
	// HTML is rendered from the markdown body of the content file
	HTML  string `yaml:"-"`
	Image string `yaml:"image"`
	Stats []Stat `yaml:"stats"`
}

type Stat struct {
	Value int    `yaml:"value"`
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
}

type Service struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type Member struct {
	Name   string       `yaml:"name"`
	Role   string       `yaml:"role"`
	Image  string       `yaml:"image"`
	Bio    string       `yaml:"bio"`
	Social []SocialLink `yaml:"social"`
}

type SocialLink struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
}

type ClientLogo struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

// DefaultSite is served when no content file is present.
func DefaultSite() *Site {
	return &Site{
		Hero: Hero{
			Badge:     "Design • Develop • Deploy",
			Title:     "Transforming Ideas into",
			Highlight: "Digital Reality",
			Subtitle:  "We craft stunning, high-performance websites and applications that elevate your brand and drive business growth.",
			Image:     "img/work-2.svg",
			ImageAlt:  "Web Development Services",
		},
		About: About{
			Title: "About Our Agency",
			HTML: "<p>Founded with passion and driven by innovation, our agency specializes in creating digital solutions that exceed expectations. " +
				"We combine strategic thinking, cutting-edge technology, and creative design to help businesses thrive in the digital landscape.</p>",
			Image: "img/work-1.svg",
			Stats: []Stat{
				{Value: 12, Label: "Happy Clients", Icon: "😊"},
				{Value: 8, Label: "Business Partners", Icon: "🤝"},
			},
		},
		Services: []Service{
			{Title: "App Development", Icon: "📱", Description: "Build powerful, scalable mobile applications for iOS and Android platforms with cutting-edge technologies and intuitive user experiences."},
			{Title: "Web Development", Icon: "🌐", Description: "Create responsive, high-performance websites and web applications that deliver exceptional user experiences across all devices."},
			{Title: "Cyber Security", Icon: "🔒", Description: "Protect your digital assets with comprehensive security solutions including penetration testing, vulnerability assessments, and secure coding practices."},
			{Title: "UI/UX Design", Icon: "🎨", Description: "Transform user experiences with intuitive interface designs that balance aesthetic appeal with functional efficiency and conversion optimization."},
			{Title: "SEO & Digital Marketing", Icon: "📈", Description: "Boost your online visibility and drive targeted traffic with data-driven SEO strategies and comprehensive digital marketing campaigns."},
			{Title: "DevOps, Cloud Services & SecOps", Icon: "☁️", Description: "Optimize deployment workflows, leverage scalable cloud infrastructure, and implement robust security operations to enhance application reliability, performance and safety."},
		},
		Team: []Member{
			{Name: "Ruby Gupta", Role: "CEO & Founder", Image: "img/team/memb-4.svg", Bio: "Ruby leads our strategic vision with a passion for innovation and excellence. As our founder, she brings entrepreneurial spirit and visionary leadership to drive our company forward."},
			{Name: "Sant Gupta", Role: "Cloud & DevOps Engineer", Image: "img/team/memb-1.svg", Bio: "Sant brings 10 years of expertise in cloud architecture, containerization, and CI/CD pipelines, ensuring our infrastructure is robust, scalable, and secure."},
			{Name: "Yash Kumar Singh", Role: "Fullstack Web Developer", Image: "img/team/memb-3.svg", Bio: "Yash brings 4 years of fullstack development expertise, crafting seamless web experiences with modern frontend frameworks and robust backend solutions."},
			{Name: "Salender Nath", Role: "Backend Developer", Image: "img/team/memb-2.svg", Bio: "Salender specializes in building robust server-side architecture and efficient database solutions that power our applications with reliability and performance."},
		},
		ClientsTitle: "Our Trusted Clients",
		Clients: []ClientLogo{
			{Src: "img/clients/client-1.svg", Alt: "Google"},
			{Src: "img/clients/client-2.svg", Alt: "Amazon"},
			{Src: "img/clients/client-3.svg", Alt: "Microsoft"},
			{Src: "img/clients/client-4.svg", Alt: "Apple"},
		},
	}
}
