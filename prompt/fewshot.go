package prompt

import "github.com/fwojciec/brochure"

// fewShotExamples holds one example set per supported language. Languages
// without a set fall back to English in Builder.fewShotSet; the fallback is
// logged, never silent.
var fewShotExamples = map[string][]brochure.FewShotExample{
	"en": {
		{
			Input: "You are looking at a company called: TechCorp\n" +
				"Here are the contents of its landing page and other relevant pages; " +
				"use this information to build a short brochure of the company in markdown.\n" +
				"Landing page (https://techcorp.example):\n" +
				"Webpage Title:\nTechCorp - Innovative Software Solutions\n" +
				"Webpage Contents:\nTechCorp is a leading software development company specializing in enterprise solutions. " +
				"We help businesses transform their operations through cutting-edge technology. " +
				"Founded in 2015, we have served over 500 clients worldwide.\n\n" +
				"Sub-page (https://techcorp.example/about):\n" +
				"Webpage Title:\nAbout TechCorp\n" +
				"Webpage Contents:\nOur mission is to democratize technology for businesses of all sizes. " +
				"We believe in innovation, collaboration, and excellence. " +
				"Our team of 100+ engineers works remotely across 15 countries.\n",
			Output: "# TechCorp - Innovative Software Solutions\n\n" +
				"## About Us\n" +
				"TechCorp is a leading software development company that has been transforming businesses " +
				"through cutting-edge technology since 2015. We specialize in enterprise solutions that help " +
				"organizations of all sizes leverage the power of modern technology.\n\n" +
				"## Our Mission\n" +
				"To democratize technology for businesses worldwide, making innovative solutions accessible " +
				"and practical for companies of every scale.\n\n" +
				"## Company Culture\n" +
				"- **Innovation**: We push the boundaries of what's possible\n" +
				"- **Collaboration**: Our global team works together seamlessly\n" +
				"- **Excellence**: We deliver nothing but the highest quality solutions\n\n" +
				"## Our Team\n" +
				"100+ talented engineers working remotely across 15 countries, bringing diverse perspectives " +
				"and expertise to every project.\n\n" +
				"## Track Record\n" +
				"- **500+ satisfied clients** worldwide\n" +
				"- **8+ years** of proven experience\n" +
				"- **Global presence** across multiple continents\n\n" +
				"*Ready to transform your business? Let's build the future together.*",
		},
	},
	"es": {
		{
			Input: "You are looking at a company called: TechCorp\n" +
				"Here are the contents of its landing page and other relevant pages; " +
				"use this information to build a short brochure of the company in markdown.\n" +
				"Landing page (https://techcorp.example):\n" +
				"Webpage Title:\nTechCorp - Innovative Software Solutions\n" +
				"Webpage Contents:\nTechCorp is a leading software development company specializing in enterprise solutions. " +
				"Founded in 2015, we have served over 500 clients worldwide.\n",
			Output: "# TechCorp - Soluciones de Software Innovadoras\n\n" +
				"## Quiénes Somos\n" +
				"TechCorp es una empresa líder en desarrollo de software que transforma negocios mediante " +
				"tecnología de vanguardia desde 2015. Nos especializamos en soluciones empresariales para " +
				"organizaciones de todos los tamaños.\n\n" +
				"## Trayectoria\n" +
				"- **Más de 500 clientes satisfechos** en todo el mundo\n" +
				"- **Presencia global** en varios continentes\n\n" +
				"*¿Listo para transformar su negocio? Construyamos el futuro juntos.*",
		},
	},
}
