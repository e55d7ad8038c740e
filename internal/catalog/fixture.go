package catalog

import (
	"github.com/alexswami/portfolio-server/internal/domain"
)

func fixtureProjects() []domain.Project {
	return []domain.Project{
		{
			ID:          "1",
			Title:       "LiveDocs - Web Application",
			Description: "LiveDocs is a collaborative document editor. The primary goal is to demonstrate developer skills in a realtime environment that creates a lasting impact.",
			Image:       "/assets/livedocs.png",
			Tags:        []string{"Next", "TypeScript", "LiveBlocks"},
			Link:        "https://livedocs45.vercel.app/",
			GitHub:      "https://github.com/alexswami/livedocs",
		},
		{
			ID:          "2",
			Title:       "Netlink - Social Media App",
			Description: "A full stack social media platform offering a range of functionalities to enhance user interaction and engagement.",
			Image:       "/assets/netlink.png",
			Tags:        []string{"Node", "Express", "MongoDB"},
			Link:        "https://netlink-demo.onrender.com/",
			GitHub:      "https://github.com/alexswami/netlink",
		},
		{
			ID:          "3",
			Title:       "Tree Top Tales - Blog App",
			Description: "A blog application where users can post their thoughts and ideas by writing blogs with images, with full authentication.",
			Image:       "/assets/blog.png",
			Tags:        []string{"React", "TailwindCSS", "AppWrite"},
			Link:        "https://treetoptales.vercel.app/",
			GitHub:      "https://github.com/alexswami/tree-top-tales",
		},
	}
}

func fixtureSkills() []domain.Skill {
	return []domain.Skill{
		{Name: "React", Category: "Frontend", Level: 95, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/react/react-original.svg"},
		{Name: "Next.js", Category: "Frontend", Level: 92, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/nextjs/nextjs-original.svg"},
		{Name: "TypeScript", Category: "Frontend", Level: 90, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/typescript/typescript-original.svg"},
		{Name: "Tailwind CSS", Category: "Frontend", Level: 95, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon@latest/icons/tailwindcss/tailwindcss-original.svg"},
		{Name: "Node.js", Category: "Backend", Level: 85, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/nodejs/nodejs-original.svg"},
		{Name: "Go", Category: "Backend", Level: 82, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/go/go-original.svg"},
		{Name: "MongoDB", Category: "Backend", Level: 80, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/mongodb/mongodb-original.svg"},
		{Name: "Python", Category: "Backend", Level: 85, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/python/python-original.svg"},
		{Name: "Gemini API", Category: "AI", Level: 78, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/google/google-original.svg"},
		{Name: "GitHub", Category: "Tools", Level: 80, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/github/github-original.svg"},
		{Name: "Git", Category: "Tools", Level: 90, Icon: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/git/git-original.svg"},
	}
}

func fixtureCertifications() []domain.Certification {
	return []domain.Certification{
		{
			ID:            "c1",
			Title:         "Google Cloud Professional Cloud Architect",
			Issuer:        "Google Cloud",
			IssueDate:     "Jan 2024",
			CredentialURL: "#",
			Image:         "/assets/certs/gcp.svg",
		},
		{
			ID:            "c2",
			Title:         "Meta Front-End Developer Professional Certificate",
			Issuer:        "Meta",
			IssueDate:     "Nov 2023",
			CredentialURL: "#",
			Image:         "/assets/certs/meta.svg",
		},
		{
			ID:            "c3",
			Title:         "DeepLearning.AI AI Developer Specialization",
			Issuer:        "DeepLearning.AI",
			IssueDate:     "Sep 2023",
			CredentialURL: "#",
			Image:         "/assets/certs/deeplearning.png",
		},
	}
}
