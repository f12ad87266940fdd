package catalog

import "github.com/alexanderramin/agrismart/internal/domain"

var defaultSchemes = []domain.GovernmentScheme{
	{
		Title: domain.LocalizedText{
			domain.LangEnglish: "PM-KISAN Scheme",
			domain.LangMarathi: "पंतप्रधान किसान योजना",
			domain.LangHindi:   "पीएम-किसान योजना",
		},
		Description: domain.LocalizedText{
			domain.LangEnglish: "Financial support for small and marginal farmers.",
			domain.LangMarathi: "अल्प व अत्यल्प भूधारक शेतकऱ्यांसाठी आर्थिक सहाय्य.",
			domain.LangHindi:   "छोटे और सीमांत किसानों के लिए वित्तीय सहायता।",
		},
		Link: "https://pmkisan.gov.in/",
	},
	{
		Title: domain.LocalizedText{
			domain.LangEnglish: "Pradhan Mantri Fasal Bima Yojana",
			domain.LangMarathi: "प्रधानमंत्री फसल विमा योजना",
			domain.LangHindi:   "प्रधानमंत्री फसल बीमा योजना",
		},
		Description: domain.LocalizedText{
			domain.LangEnglish: "Insurance coverage and financial support to farmers in the event of failure of any of the notified crops.",
			domain.LangMarathi: "अधिसूचित पिकांपैकी कोणत्याही पिकाच्या नुकसानी झाल्यास शेतकऱ्यांना विमा संरक्षण आणि आर्थिक सहाय्य.",
			domain.LangHindi:   "अधिसूचित फसलों में से किसी के भी विफल होने की स्थिति में किसानों को बीमा कवरेज और वित्तीय सहायता।",
		},
		Link: "https://pmfby.gov.in/",
	},
	{
		Title: domain.LocalizedText{
			domain.LangEnglish: "Soil Health Card Scheme",
			domain.LangMarathi: "मृदा आरोग्य कार्ड योजना",
			domain.LangHindi:   "मृदा स्वास्थ्य कार्ड योजना",
		},
		Description: domain.LocalizedText{
			domain.LangEnglish: "Helping farmers to improve soil health and increase productivity.",
			domain.LangMarathi: "शेतकऱ्यांना जमिनीचे आरोग्य सुधारण्यास आणि उत्पादकता वाढविण्यात मदत करणे.",
			domain.LangHindi:   "किसानों को मिट्टी के स्वास्थ्य में सुधार और उत्पादकता बढ़ाने में मदद करना।",
		},
		Link: "https://soilhealth.dac.gov.in/",
	},
}

var defaultVideos = []domain.TutorialVideo{
	{
		ID: 1,
		Title: domain.LocalizedText{
			domain.LangEnglish: "Modern Drip Irrigation Techniques",
			domain.LangMarathi: "आधुनिक ठिबक सिंचन तंत्र",
			domain.LangHindi:   "आधुनिक ड्रिप सिंचाई तकनीकें",
		},
		Description: domain.LocalizedText{
			domain.LangEnglish: "Learn how to set up and maintain a drip irrigation system for water conservation and better crop yield.",
			domain.LangMarathi: "पाण्याची बचत आणि उत्तम पीक उत्पादनासाठी ठिबक सिंचन प्रणाली कशी स्थापित करावी आणि त्याची देखभाल कशी करावी ते शिका.",
			domain.LangHindi:   "जल संरक्षण और बेहतर फसल उपज के लिए ड्रिप सिंचाई प्रणाली स्थापित करने और बनाए रखने का तरीका जानें।",
		},
		YouTubeID: "p28hT26i4-g",
		Tags:      []string{"agriculture", "irrigation"},
	},
	{
		ID: 2,
		Title: domain.LocalizedText{
			domain.LangEnglish: "Organic Pest Control Methods",
			domain.LangMarathi: "सेंद्रिय कीड नियंत्रण पद्धती",
			domain.LangHindi:   "जैविक कीट नियंत्रण विधियाँ",
		},
		Description: domain.LocalizedText{
			domain.LangEnglish: "Discover effective and natural ways to manage pests in your farm without using harmful chemicals.",
			domain.LangMarathi: "हानिकारक रसायनांचा वापर न करता तुमच्या शेतातील कीटकांचे व्यवस्थापन करण्याचे प्रभावी आणि नैसर्गिक मार्ग शोधा.",
			domain.LangHindi:   "हानिकारक रसायनों का उपयोग किए बिना अपने खेत में कीटों का प्रबंधन करने के प्रभावी और प्राकृतिक तरीके खोजें।",
		},
		YouTubeID: "r_pP_Mn0FpI",
		Tags:      []string{"pest", "agriculture"},
	},
	{
		ID: 3,
		Title: domain.LocalizedText{
			domain.LangEnglish: "Soil Testing and Nutrient Management",
			domain.LangMarathi: "माती परीक्षण आणि पोषक तत्व व्यवस्थापन",
			domain.LangHindi:   "मृदा परीक्षण और पोषक तत्व प्रबंधन",
		},
		Description: domain.LocalizedText{
			domain.LangEnglish: "A step-by-step guide on how to test your soil and manage nutrients for optimal plant growth.",
			domain.LangMarathi: "तुमच्या जमिनीची चाचणी कशी करावी आणि वनस्पतींच्या चांगल्या वाढीसाठी पोषक तत्वांचे व्यवस्थापन कसे करावे यासाठी एक टप्प्याटप्प्याने मार्गदर्शक.",
			domain.LangHindi:   "अपनी मिट्टी का परीक्षण कैसे करें और इष्टतम पौधों की वृद्धि के लिए पोषक तत्वों का प्रबंधन कैसे करें, इस पर एक कदम-दर-कदम मार्गदर्शिका।",
		},
		YouTubeID: "6Lz_28zlo8g",
		Tags:      []string{"agriculture", "soil"},
	},
}
